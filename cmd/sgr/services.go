package main

import (
	"context"
	"errors"

	"github.com/campuskg/scholargraph/internal/config"
	"github.com/campuskg/scholargraph/internal/embedding"
	"github.com/campuskg/scholargraph/internal/graphstore"
	"github.com/campuskg/scholargraph/internal/semantic"
)

// loadConfig loads the CLI configuration or exits.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// openStore opens the configured graph store backend. Connectivity failure
// is fatal here: the system is unusable without the graph.
func openStore(ctx context.Context, cfg *config.Config) graphstore.Store {
	switch cfg.Graph.Backend {
	case "", "neo4j":
		store, err := graphstore.OpenNeo4j(ctx, graphstore.Neo4jConfig{
			URI:      cfg.Graph.URI,
			Username: cfg.Graph.Username,
			Password: config.Password(),
			Database: cfg.Graph.Database,
		})
		if err != nil {
			exitWithError(ExitDataError, "connecting to graph store: %v", err)
		}
		return store
	case "sqlite":
		store, err := graphstore.OpenSQLite(cfg.Graph.Path)
		if err != nil {
			exitWithError(ExitDataError, "opening local graph store: %v", err)
		}
		return store
	default:
		exitWithError(ExitConfigError, "unknown graph backend %q (want neo4j or sqlite)", cfg.Graph.Backend)
		return nil
	}
}

// newProvider builds the embedding provider from config and verifies
// Ollama is reachable.
func newProvider(ctx context.Context, cfg *config.Config) *embedding.OllamaProvider {
	provider := embedding.NewOllamaProvider(
		embedding.WithBaseURL(cfg.Embedding.OllamaURL),
		embedding.WithModel(cfg.Embedding.Model),
		embedding.WithDimensions(cfg.Embedding.Dimensions),
	)
	if err := provider.IsAvailable(ctx); err != nil {
		exitWithError(ExitDataError, "Ollama is not running\n\nStart Ollama with 'ollama serve' or install from https://ollama.ai")
	}
	return provider
}

// loadEngine creates an engine with the persisted index snapshot installed.
// Exits with guidance when the index has not been built yet.
func loadEngine(cfg *config.Config, provider *embedding.OllamaProvider, store graphstore.Store) *semantic.Engine {
	snap, err := semantic.LoadSnapshot(cfg.SnapshotPath)
	if err != nil {
		if errors.Is(err, semantic.ErrSnapshotNotFound) {
			exitWithError(ExitConfigError, "semantic index not found\n\nRun 'sgr index build' to create the index.")
		}
		exitWithError(ExitError, "loading index: %v", err)
	}

	engine := semantic.NewEngine(provider, store)
	engine.Restore(snap)
	return engine
}
