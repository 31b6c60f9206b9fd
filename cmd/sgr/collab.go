package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/campuskg/scholargraph/internal/collab"
	"github.com/campuskg/scholargraph/internal/viz"
	"github.com/spf13/cobra"
)

var (
	collabMinPapers int
	collabHTMLPath  string
	collabLayout    string
	trendsYearsBack int
)

func init() {
	rootCmd.AddCommand(collabCmd)
	rootCmd.AddCommand(trendsCmd)
	collabCmd.Flags().IntVar(&collabMinPapers, "min-papers", collab.DefaultMinPapers, "Minimum papers for an author to appear in the network")
	collabCmd.Flags().StringVar(&collabHTMLPath, "html", "", "Write an interactive network visualization to this file")
	collabCmd.Flags().StringVar(&collabLayout, "layout", "force", "Visualization layout: force, circle, or grid")
	trendsCmd.Flags().IntVar(&trendsYearsBack, "years-back", collab.DefaultYearsBack, "How many years of history to analyze")
}

// CollabResponse is the response for the collab command.
type CollabResponse struct {
	ResearchArea string         `json:"research_area"`
	Network      *collab.Network `json:"network"`
	TopByDegree  []collab.Node  `json:"top_by_degree"`
}

var collabCmd = &cobra.Command{
	Use:   "collab <research-area>",
	Short: "Analyze the co-authorship network for a research area",
	Args:  cobra.ExactArgs(1),
	RunE:  runCollab,
}

func runCollab(cmd *cobra.Command, args []string) error {
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

	collabCfg := cfg.Collab
	collabCfg.MinPapers = collabMinPapers
	analyzer := collab.NewAnalyzer(engine, collabCfg)

	network, err := analyzer.Network(ctx, area)
	if err != nil {
		exitWithError(ExitError, "analyzing network: %v", err)
	}

	if collabHTMLPath != "" {
		page, err := viz.GenerateHTML(viz.FromNetwork(network), viz.HTMLOptions{
			Title:  fmt.Sprintf("Collaboration Network: %s", area),
			Layout: collabLayout,
		})
		if err != nil {
			exitWithError(ExitError, "rendering network: %v", err)
		}
		if err := os.WriteFile(collabHTMLPath, []byte(page), 0644); err != nil {
			exitWithError(ExitError, "writing %s: %v", collabHTMLPath, err)
		}
		fmt.Fprintf(os.Stderr, "Wrote %s\n", collabHTMLPath)
	}

	resp := CollabResponse{
		ResearchArea: area,
		Network:      network,
		TopByDegree:  network.TopByDegree(5),
	}
	if humanOutput {
		outputHuman("%d researchers, %d collaborations, density %.3f, %d components\n",
			len(network.Nodes), len(network.Edges), network.Density, network.Components)
		for _, node := range resp.TopByDegree {
			outputHuman("  %s (centrality %.3f, %d papers)\n", node.Name, node.Degree, node.Papers)
		}
		return nil
	}
	return outputJSON(resp)
}

// TrendsResponse is the response for the trends command.
type TrendsResponse struct {
	ResearchArea string         `json:"research_area"`
	Trends       *collab.Trends `json:"trends"`
}

var trendsCmd = &cobra.Command{
	Use:   "trends <research-area>",
	Short: "Analyze publication trends for a research area",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrends,
}

func runTrends(cmd *cobra.Command, args []string) error {
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

	analyzer := collab.NewAnalyzer(engine, cfg.Collab)
	trends, err := analyzer.Trends(ctx, area, trendsYearsBack)
	if err != nil {
		exitWithError(ExitError, "analyzing trends: %v", err)
	}

	resp := TrendsResponse{ResearchArea: area, Trends: trends}
	if humanOutput {
		outputHuman("%d papers, %d citations, trend %+.2f papers/year\n",
			trends.TotalPapers, trends.TotalCitations, trends.PaperTrend)
		for _, kw := range trends.Emerging {
			outputHuman("  emerging: %s (%d recent, growth %+.1fx)\n", kw.Keyword, kw.RecentCount, kw.Growth)
		}
		return nil
	}
	return outputJSON(resp)
}
