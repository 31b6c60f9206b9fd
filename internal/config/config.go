// Package config handles configuration for the sgr CLI, stored in
// ~/.config/sgr/config.yml. Secrets never live in the file: the graph
// password comes from the NEO4J_PASSWORD environment variable.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/campuskg/scholargraph/internal/collab"
	"github.com/campuskg/scholargraph/internal/researcher"
)

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "sgr"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// SnapshotFile is the persisted semantic index file name.
	SnapshotFile = "semantic.gob"
	// GraphFile is the local SQLite graph database file name.
	GraphFile = "graph.db"

	// EnvPassword is the environment variable holding the graph password.
	EnvPassword = "NEO4J_PASSWORD"
)

// GraphConfig selects and parameterizes the graph store backend.
type GraphConfig struct {
	// Backend is "neo4j" or "sqlite".
	Backend  string `yaml:"backend,omitempty"`
	URI      string `yaml:"uri,omitempty"`
	Username string `yaml:"username,omitempty"`
	Database string `yaml:"database,omitempty"`
	// Path is the SQLite database path for the sqlite backend.
	Path string `yaml:"path,omitempty"`
}

// EmbeddingConfig parameterizes the embedding provider.
type EmbeddingConfig struct {
	OllamaURL  string `yaml:"ollama_url,omitempty"`
	Model      string `yaml:"model,omitempty"`
	Dimensions int    `yaml:"dimensions,omitempty"`
}

// Config is the full sgr configuration.
type Config struct {
	Graph     GraphConfig       `yaml:"graph,omitempty"`
	Embedding EmbeddingConfig   `yaml:"embedding,omitempty"`
	Ranking   researcher.Config `yaml:"ranking,omitempty"`
	Collab    collab.Config     `yaml:"collab,omitempty"`
	// SnapshotPath overrides where the semantic index is persisted.
	SnapshotPath string `yaml:"snapshot_path,omitempty"`
}

// Default returns the configuration defaults.
func Default() Config {
	return Config{
		Graph: GraphConfig{
			Backend:  "neo4j",
			URI:      "neo4j://127.0.0.1:7687",
			Username: "neo4j",
			Database: "neo4j",
			Path:     filepath.Join(dataDir(), GraphFile),
		},
		Embedding: EmbeddingConfig{
			OllamaURL:  "http://localhost:11434",
			Model:      "all-minilm:l6-v2",
			Dimensions: 384,
		},
		Ranking:      researcher.DefaultConfig(),
		Collab:       collab.Config{Institutions: researcher.DefaultConfig().Institutions},
		SnapshotPath: filepath.Join(dataDir(), SnapshotFile),
	}
}

// Path returns the path to the config file. Respects XDG_CONFIG_HOME,
// defaults to ~/.config/sgr/config.yml.
func Path() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// dataDir returns where sgr keeps its local data (index snapshot, local
// graph database).
func dataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir)
}

// Load reads configuration from the given path, layering it over the
// defaults. A missing file is not an error: defaults are returned. An
// empty path uses Path().
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := Default()
	if path == "" {
		return &cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Password returns the graph password from the environment.
func Password() string {
	return os.Getenv(EnvPassword)
}
