// Package main provides the sgr CLI entry point.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// configPath overrides the default config file location
var configPath string

func main() {
	// Credentials such as NEO4J_PASSWORD may live in a local .env
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgr",
	Short: "Hybrid paper retrieval and researcher ranking",
	Long: `sgr retrieves academic papers and affiliated researchers from a
property graph of documents, authors, and affiliations.

It combines a semantic vector index over paper titles and abstracts with
graph-stored authorship relationships, and ranks researchers for an
institution with a composite heuristic score. All commands output JSON by
default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.Version = Version
}
