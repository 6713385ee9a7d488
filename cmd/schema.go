package cmd

import (
	"github.com/spf13/cobra"

	"github.com/helio-fm/helio-sequencer/internal/xmlwriter"
	"github.com/helio-fm/helio-sequencer/pkg/utils"
)

// schemaCmd prints or writes the XML Schema of the generated documents.
var schemaCmd = &cobra.Command{
	Use:   "schema [output.xsd]",
	Short: "Print the XML Schema of the Translations format",
	Long: `Print the XML Schema (XSD) describing the documents csv2locale writes.
With an argument, the schema is written to that file instead.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		xsd := xmlwriter.GenerateXSD()

		if len(args) == 0 {
			_, err := cmd.OutOrStdout().Write(xsd)
			return err
		}

		_, err := utils.NewFileManager(false, "").WriteOutput(args[0], xsd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
