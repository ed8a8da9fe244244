package cmd

import (
	"github.com/spf13/cobra"

	"github.com/inferenceatlas/atlas/cmd/atlas/format"
)

var outputFormat string

// RootCmd is the top-level CLI command.
var RootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Inference Atlas CLI: rank LLM hosting platforms by monthly cost",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table, json")
}

func getFormat() format.OutputFormat {
	if outputFormat == "json" {
		return format.FormatJSON
	}
	return format.FormatTable
}
