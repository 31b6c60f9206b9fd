package main

import (
	"context"
	"errors"
	"strings"

	"github.com/campuskg/scholargraph/internal/researcher"
	"github.com/campuskg/scholargraph/internal/semantic"
	"github.com/spf13/cobra"
)

var researchersLimit int

func init() {
	rootCmd.AddCommand(researchersCmd)
	researchersCmd.Flags().IntVarP(&researchersLimit, "limit", "l", researcher.DefaultTopK, "Maximum number of researchers")
}

// ResearchersResponse is the response for the researchers command.
type ResearchersResponse struct {
	ResearchArea string              `json:"research_area"`
	Researchers  []researcher.Ranked `json:"researchers"`
	Total        int                 `json:"total"`
}

var researchersCmd = &cobra.Command{
	Use:   "researchers <research-area>",
	Short: "Rank institution researchers for a research area",
	Long: `Researchers samples a wide pool of semantically relevant papers,
keeps those affiliated with the configured institution, and ranks the
contributing authors by a composite score over productivity, impact,
recency, and title diversity.`,
	Args: cobra.ExactArgs(1),
	RunE: runResearchers,
}

func runResearchers(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	area := strings.TrimSpace(args[0])
	if area == "" {
		exitWithError(ExitError, "research area cannot be empty")
	}

	cfg := loadConfig()
	store := openStore(ctx, cfg)
	defer store.Close(ctx)
	provider := newProvider(ctx, cfg)
	engine := loadEngine(cfg, provider, store)

	ranker := researcher.NewRanker(engine, cfg.Ranking)
	ranked, err := ranker.Rank(ctx, area, researchersLimit)
	if err != nil {
		if errors.Is(err, semantic.ErrIndexNotBuilt) {
			exitWithError(ExitConfigError, "semantic index not built\n\nRun 'sgr index build' first.")
		}
		exitWithError(ExitError, "ranking researchers: %v", err)
	}

	resp := ResearchersResponse{
		ResearchArea: area,
		Researchers:  ranked,
		Total:        len(ranked),
	}
	if humanOutput {
		for i, r := range ranked {
			outputHuman("%2d. %s (score %.2f)\n", i+1, r.Name, r.Score)
			outputHuman("      %d papers, %d citations, %d recent",
				r.PaperCount, r.TotalCitations, r.RecentPapers)
			if r.Affiliation != "" {
				outputHuman(" | %s", truncate(r.Affiliation, 50))
			}
			outputHuman("\n")
			if len(r.TopPapers) > 0 {
				outputHuman("      e.g. %s\n", truncate(r.TopPapers[0].Title, 70))
			}
		}
		return nil
	}
	return outputJSON(resp)
}
