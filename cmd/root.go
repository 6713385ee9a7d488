// =============================================================================
// csv2locale - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// converts a translation table into the Translations XML document; the other
// commands are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (csv2locale <input> <output> <lang1> [lang2 ...])
//   ├── checkCmd   (csv2locale check <input> <lang1> [lang2 ...])
//   ├── schemaCmd  (csv2locale schema [output.xsd])
//   └── versionCmd (csv2locale version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (e.g., --config, --verbose)
//   2. Loading the configuration and applying flag overrides
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/helio-fm/helio-sequencer/internal/config"
	"github.com/helio-fm/helio-sequencer/internal/converter"
	"github.com/helio-fm/helio-sequencer/internal/types"
	"github.com/helio-fm/helio-sequencer/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// logFormat selects the log formatter ("text" or "json").
var logFormat string

// inputFormat forces the table reader ("csv" or "xlsx").
var inputFormat string

// sheet selects the worksheet of an XLSX input.
var sheet string

// dryRun prints the document instead of writing it.
var dryRun bool

// strict fails the run on blocking validation issues.
var strict bool

// noDeclaration omits the XML declaration.
var noDeclaration bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csv2locale [flags] <input> <output> <lang1> [lang2 ...]",
	Short: "Convert a translation table into Helio's Translations XML",
	Long: `csv2locale converts a translation table into the Translations XML document
read by Helio's localization loader.

The table has an ID column with translation keys and one column per language.
Rows whose ID is ::locale, ::fallback, ::plural or ::author set the locale's
display name, fallback locale, plural equation and author. A translation that
contains {x} and spans several lines becomes a plural literal with one form
per line.

The input may be delimited text (CSV) or an XLSX workbook.

Example Usage:
  csv2locale translations.csv en.xml en          # One locale
  csv2locale translations.xlsx all.xml en de fr  # Several locales, in order
  csv2locale --dry-run translations.csv - en     # Print instead of writing
  csv2locale check translations.csv en de        # Validate only`,

	Args: cobra.ArbitraryArgs,

	// Errors are printed once by Execute.
	SilenceErrors: true,
	SilenceUsage:  true,

	RunE: func(cmd *cobra.Command, args []string) error {
		// Too few arguments is a usage hint, not a failure.
		if len(args) < 3 {
			fmt.Fprint(cmd.OutOrStdout(), cmd.UsageString())
			return nil
		}
		return runConvert(cmd, args[0], args[1], args[2:])
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and root-only flags.
func init() {
	// ==========================================================================
	// PERSISTENT FLAGS
	// ==========================================================================
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultConfigFile,
		"Path to the configuration file (YAML, or TOML with a .toml extension)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	rootCmd.PersistentFlags().StringVar(
		&logFormat,
		"log-format",
		"",
		"Log format: text or json (default from config, text)",
	)

	rootCmd.PersistentFlags().StringVar(
		&inputFormat,
		"format",
		"",
		"Force the input format: csv or xlsx (default: by file extension)",
	)

	rootCmd.PersistentFlags().StringVar(
		&sheet,
		"sheet",
		"",
		"Worksheet to read from XLSX input (default: the first one)",
	)

	// ==========================================================================
	// LOCAL FLAGS
	// ==========================================================================

	rootCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Write the XML to standard output instead of the output file",
	)

	rootCmd.Flags().BoolVar(
		&strict,
		"strict",
		false,
		"Fail without writing when validation finds errors",
	)

	rootCmd.Flags().BoolVar(
		&noDeclaration,
		"no-declaration",
		false,
		"Omit the <?xml ...?> declaration",
	)
}

// =============================================================================
// COMMAND HELPERS
// =============================================================================

// runConvert runs the full conversion pipeline.
func runConvert(cmd *cobra.Command, input, output string, langs []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if strict {
		cfg.Validation.Strict = true
	}
	if noDeclaration {
		cfg.Output.OmitDeclaration = true
	}

	conv := converter.New(cfg, logger)
	conv.DryRun = dryRun
	conv.Stdout = cmd.OutOrStdout()

	result := conv.Run(input, output, langs)
	return result.Error
}

// setup loads the configuration, applies the persistent flag overrides and
// creates the run logger.
func setup(cmd *cobra.Command) (*config.Config, *logrus.Entry, error) {
	explicit := false
	if f := cmd.Flag("config"); f != nil {
		explicit = f.Changed
	}

	cfg, err := config.Load(cfgFile, explicit)
	if err != nil {
		return nil, nil, err
	}

	if inputFormat != "" {
		cfg.InputFormat = inputFormat
	}
	if sheet != "" {
		cfg.Sheet = sheet
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}
	if verbose {
		cfg.LogLevel = logrus.DebugLevel.String()
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, &types.UsageError{Message: "invalid flags: " + err.Error()}
	}

	logger, err := converter.NewLogger(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger.WithField("run_id", utils.NewRunID()), nil
}
