package main

import (
	"strings"

	"github.com/campuskg/scholargraph/internal/querytag"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(extractCmd)
}

var extractCmd = &cobra.Command{
	Use:   "extract <query>",
	Short: "Tag a query with domain, method, and constraint labels",
	Long: `Extract classifies a free-text query against fixed keyword tables.
The tags are a presentation aid; retrieval and ranking do not use them.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		components := querytag.Extract(args[0])
		if humanOutput {
			outputHuman("domains:     %s\n", strings.Join(components.Domains, ", "))
			outputHuman("methods:     %s\n", strings.Join(components.Methods, ", "))
			outputHuman("constraints: %s\n", strings.Join(components.Constraints, ", "))
			return nil
		}
		return outputJSON(components)
	},
}
