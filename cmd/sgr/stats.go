package main

import (
	"context"
	"strings"

	"github.com/campuskg/scholargraph/internal/graphstore"
	"github.com/spf13/cobra"
)

var (
	statsAffiliation string
	statsLimit       int
	statsSinceYear   int
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(coauthorsCmd)
	statsCmd.Flags().StringVar(&statsAffiliation, "affiliation", "birmingham", "Affiliation name substring to match")
	statsCmd.Flags().IntVarP(&statsLimit, "limit", "l", 10, "Maximum number of authors")
	statsCmd.Flags().IntVar(&statsSinceYear, "since", 2020, "Earliest year for the yearly breakdown")
}

// StatsResponse is the response for the stats command.
type StatsResponse struct {
	Affiliation  string                  `json:"affiliation"`
	TopAuthors   []graphstore.AuthorStats `json:"top_authors"`
	PapersByYear []graphstore.YearCount   `json:"papers_by_year"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show institutional output straight from the graph store",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig()
	store := openStore(ctx, cfg)
	defer store.Close(ctx)

	authors, err := store.TopAuthors(ctx, statsAffiliation, statsLimit)
	if err != nil {
		exitWithError(ExitError, "querying top authors: %v", err)
	}
	years, err := store.PapersByYear(ctx, statsAffiliation, statsSinceYear)
	if err != nil {
		exitWithError(ExitError, "querying papers by year: %v", err)
	}

	resp := StatsResponse{
		Affiliation:  statsAffiliation,
		TopAuthors:   authors,
		PapersByYear: years,
	}
	if humanOutput {
		outputHuman("Top authors:\n")
		for _, a := range authors {
			outputHuman("  %s: %d papers, %d citations\n", a.Name, a.Papers, a.Citations)
		}
		outputHuman("Papers by year:\n")
		for _, y := range years {
			outputHuman("  %d: %d\n", y.Year, y.Papers)
		}
		return nil
	}
	return outputJSON(resp)
}

// CoauthorsResponse is the response for the coauthors command.
type CoauthorsResponse struct {
	Author    string               `json:"author"`
	Coauthors []graphstore.CoAuthor `json:"coauthors"`
	Total     int                  `json:"total"`
}

var coauthorsCmd = &cobra.Command{
	Use:   "coauthors <author-name>",
	Short: "List an author's collaborators with shared-paper counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		name := strings.TrimSpace(args[0])
		if name == "" {
			exitWithError(ExitError, "author name cannot be empty")
		}

		cfg := loadConfig()
		store := openStore(ctx, cfg)
		defer store.Close(ctx)

		coauthors, err := store.CoAuthors(ctx, name)
		if err != nil {
			exitWithError(ExitError, "querying co-authors: %v", err)
		}

		resp := CoauthorsResponse{Author: name, Coauthors: coauthors, Total: len(coauthors)}
		if humanOutput {
			for _, ca := range coauthors {
				outputHuman("  %s (%d shared)\n", ca.Name, ca.SharedCount)
			}
			return nil
		}
		return outputJSON(resp)
	},
}
