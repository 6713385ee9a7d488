// =============================================================================
// csv2locale - Check Command
// =============================================================================
//
// This file defines the 'check' command, which reads and validates a table
// without writing anything.
//
// COMMAND USAGE:
//   csv2locale check [flags] <input> <lang1> [lang2 ...]
//
// FLAGS:
//   --warnings-as-errors : Fail on warnings as well as errors
//
// PROCESSING PIPELINE:
//   1. Load configuration
//   2. Read the table
//   3. Build the requested locales
//   4. Validate and print a report
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helio-fm/helio-sequencer/internal/converter"
	"github.com/helio-fm/helio-sequencer/internal/validation"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// warningsAsErrors makes warnings fail the check.
var warningsAsErrors bool

// =============================================================================
// CHECK COMMAND DEFINITION
// =============================================================================

// checkCmd represents the 'check' command.
var checkCmd = &cobra.Command{
	Use:   "check [flags] <input> <lang1> [lang2 ...]",
	Short: "Validate a translation table without writing output",
	Long: `The check command reads the table, builds the requested locales and reports
every validation issue:
  - Duplicate keys within a locale
  - Repeated ::locale, ::fallback, ::plural or ::author rows
  - Locales without a display name, unknown fallback locales
  - Plural translations without a ::plural equation
  - Column names that are not language tags
  - Keys with surrounding whitespace
  - Translations missing the {x} placeholder of the reference language

The command exits with a non-zero status when errors are found.`,

	Args: cobra.MinimumNArgs(2),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0], args[1:])
	},
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the check command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().BoolVar(
		&warningsAsErrors,
		"warnings-as-errors",
		false,
		"Treat validation warnings as errors",
	)
}

// =============================================================================
// MAIN CHECK FUNCTION
// =============================================================================

// runCheck validates the table and prints a summary report.
func runCheck(cmd *cobra.Command, input string, langs []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if warningsAsErrors {
		cfg.Validation.WarningsAsErrors = true
	}

	result := converter.New(cfg, logger).Check(input, langs)
	if result.Validation == nil {
		return result.Error
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %s ===\n", input)
	for _, l := range result.Stats.Locales {
		fmt.Fprintf(out, "  %-8s %4d literal(s) %4d plural(s) %4d untranslated\n",
			l.ID, l.Literals, l.PluralLiterals, l.Skipped)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, validation.FormatIssues(result.Validation.Issues))
	if len(result.Validation.Issues) == 0 {
		fmt.Fprintln(out)
	}

	switch {
	case result.Validation.HasErrors():
		fmt.Fprintf(out, "Status: FAILED (%d error(s), %d warning(s))\n",
			result.Validation.ErrorCount, result.Validation.WarningCount)
	case result.Validation.WarningCount > 0:
		fmt.Fprintf(out, "Status: PASSED with %d warning(s)\n", result.Validation.WarningCount)
	default:
		fmt.Fprintln(out, "Status: PASSED")
	}

	return result.Error
}
