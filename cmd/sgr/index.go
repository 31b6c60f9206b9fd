package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/campuskg/scholargraph/internal/semantic"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Manage the semantic index",
}

// IndexBuildResponse is the response for the index build command.
type IndexBuildResponse struct {
	Status           string `json:"status"`
	DocumentsIndexed int    `json:"documents_indexed"`
	DocumentsSkipped int    `json:"documents_skipped"`
	DurationMs       int64  `json:"duration_ms"`
	Model            string `json:"model"`
	SnapshotPath     string `json:"snapshot_path"`
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the semantic index from the graph store",
	Long: `Build embeds the title and abstract of every titled document in the
graph store and writes the index snapshot to disk. Rebuilding replaces any
previous snapshot. Do not run a build concurrently with searches against
the same snapshot file.`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

func runIndexBuild(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	cfg := loadConfig()

	store := openStore(ctx, cfg)
	defer store.Close(ctx)
	provider := newProvider(ctx, cfg)

	engine := semantic.NewEngine(provider, store,
		semantic.WithProgressReporter(semantic.ProgressFunc(func(current, total int) {
			if humanOutput && current%25 == 0 {
				fmt.Fprintf(os.Stderr, "  embedding %d/%d\n", current, total)
			}
		})))

	stats, err := engine.Rebuild(ctx)
	if err != nil {
		if errors.Is(err, semantic.ErrEmptyCorpus) {
			exitWithError(ExitEmptyCorpus, "no documents with titles found in the graph store")
		}
		exitWithError(ExitError, "building index: %v", err)
	}

	if err := engine.Snapshot().Save(cfg.SnapshotPath); err != nil {
		exitWithError(ExitError, "saving index: %v", err)
	}

	resp := IndexBuildResponse{
		Status:           "built",
		DocumentsIndexed: stats.DocumentsIndexed,
		DocumentsSkipped: stats.DocumentsSkipped,
		DurationMs:       stats.Duration.Milliseconds(),
		Model:            provider.ModelName(),
		SnapshotPath:     cfg.SnapshotPath,
	}
	if humanOutput {
		outputHuman("Indexed %d documents (%d skipped) in %s\n",
			resp.DocumentsIndexed, resp.DocumentsSkipped, stats.Duration.Round(time.Millisecond))
		return nil
	}
	return outputJSON(resp)
}

// IndexInfoResponse is the response for the index info command.
type IndexInfoResponse struct {
	Documents    int       `json:"documents"`
	Skipped      int       `json:"skipped"`
	Model        string    `json:"model"`
	BuiltAt      time.Time `json:"built_at"`
	SnapshotPath string    `json:"snapshot_path"`
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show semantic index status",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		snap, err := semantic.LoadSnapshot(cfg.SnapshotPath)
		if err != nil {
			if errors.Is(err, semantic.ErrSnapshotNotFound) {
				exitWithError(ExitConfigError, "semantic index not found\n\nRun 'sgr index build' to create the index.")
			}
			exitWithError(ExitError, "loading index: %v", err)
		}

		resp := IndexInfoResponse{
			Documents:    snap.Len(),
			Skipped:      snap.SkippedCount,
			Model:        snap.ModelName,
			BuiltAt:      snap.BuiltAt,
			SnapshotPath: cfg.SnapshotPath,
		}
		if humanOutput {
			outputHuman("%d documents (model %s, built %s)\n",
				resp.Documents, resp.Model, resp.BuiltAt.Format(time.RFC3339))
			return nil
		}
		return outputJSON(resp)
	},
}
