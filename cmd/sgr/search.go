package main

import (
	"context"
	"errors"
	"strings"

	"github.com/campuskg/scholargraph/internal/export"
	"github.com/campuskg/scholargraph/internal/querytag"
	"github.com/campuskg/scholargraph/internal/semantic"
	"github.com/spf13/cobra"
)

var (
	searchLimit  int
	searchBibTeX bool
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", semantic.DefaultTopK, "Maximum number of results")
	searchCmd.Flags().BoolVar(&searchBibTeX, "bibtex", false, "Output results as BibTeX entries")
}

// SearchResponse is the response for the search command.
type SearchResponse struct {
	Query      string               `json:"query"`
	Components querytag.Components  `json:"components"`
	Results    []semantic.Result    `json:"results"`
	Total      int                  `json:"total"`
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search papers by semantic similarity",
	Long: `Search finds the papers most semantically similar to a free-text
query and enriches each hit with author names and an affiliation from the
graph store.

Requires the semantic index to be built first with 'sgr index build'.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	query := strings.TrimSpace(args[0])
	if query == "" {
		exitWithError(ExitError, "search query cannot be empty")
	}

	cfg := loadConfig()
	store := openStore(ctx, cfg)
	defer store.Close(ctx)
	provider := newProvider(ctx, cfg)
	engine := loadEngine(cfg, provider, store)

	results, err := engine.Search(ctx, query, searchLimit)
	if err != nil {
		if errors.Is(err, semantic.ErrIndexNotBuilt) {
			exitWithError(ExitConfigError, "semantic index not built\n\nRun 'sgr index build' first.")
		}
		exitWithError(ExitError, "searching: %v", err)
	}

	if searchBibTeX {
		outputHuman("%s", export.ToBibTeXList(results))
		return nil
	}

	resp := SearchResponse{
		Query:      query,
		Components: querytag.Extract(query),
		Results:    results,
		Total:      len(results),
	}
	if humanOutput {
		for i, r := range results {
			outputHuman("%2d. [%.3f] %s (%d, %d citations)\n", i+1, r.Similarity,
				truncate(r.Title, 70), r.Year, r.Citations)
			if len(r.Authors) > 0 {
				outputHuman("      %s", strings.Join(r.Authors, ", "))
				if r.Affiliation != "" {
					outputHuman(" (%s)", truncate(r.Affiliation, 50))
				}
				outputHuman("\n")
			}
		}
		return nil
	}
	return outputJSON(resp)
}
