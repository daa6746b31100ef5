// Package file provides the TOML configuration file for meetsearch.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFileName is the config file name inside the config directory.
const DefaultFileName = "config.toml"

// Config holds all meetsearch settings, loaded from a TOML file.
// Missing keys fall back to defaults; a missing file yields the full
// default configuration.
type Config struct {
	Embedding EmbeddingConfig `toml:"embedding"`
	Chunking  ChunkingConfig  `toml:"chunking"`
	Search    SearchConfig    `toml:"search"`
	Sessions  SessionsConfig  `toml:"sessions"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	// Provider is "ollama" or "openai".
	Provider string `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL overrides the provider API base URL.
	BaseURL string `toml:"base_url"`

	// Dimensions overrides the model's vector dimension.
	Dimensions int `toml:"dimensions"`
}

// ChunkingConfig tunes transcript chunking.
type ChunkingConfig struct {
	// TargetChunks caps the number of chunks per transcript.
	TargetChunks int `toml:"target_chunks"`

	// MinChunkSize is the minimum chunk size in characters.
	MinChunkSize int `toml:"min_chunk_size"`

	// Overlap is the overlap between neighbouring chunks in characters.
	Overlap int `toml:"overlap"`
}

// SearchConfig tunes query behaviour.
type SearchConfig struct {
	// SnippetLength is the snippet window size in characters.
	SnippetLength int `toml:"snippet_length"`
}

// SessionsConfig tunes session lifecycle.
type SessionsConfig struct {
	// Dir is the sessions root directory.
	Dir string `toml:"dir"`

	// TimeoutMinutes is the idle expiry timeout in minutes.
	TimeoutMinutes int `toml:"timeout_minutes"`
}

// Timeout returns the session timeout as a duration.
func (c SessionsConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMinutes) * time.Minute
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Embedding: EmbeddingConfig{
			Provider: "ollama",
			Model:    "",
		},
		Chunking: ChunkingConfig{
			TargetChunks: 8,
			MinChunkSize: 800,
			Overlap:      300,
		},
		Search: SearchConfig{
			SnippetLength: 200,
		},
		Sessions: SessionsConfig{
			Dir:            "data/sessions",
			TimeoutMinutes: 60,
		},
	}
}

// Load reads the configuration from configDir/config.toml. If
// configDir is empty it defaults to ~/.meetsearch. A missing file is
// not an error; the defaults are returned.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".meetsearch")
	}

	cfg := Default()

	data, err := os.ReadFile(filepath.Join(configDir, DefaultFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to configDir/config.toml.
func (c *Config) Save(configDir string) error {
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("config: create dir: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	// Write with restricted permissions
	return os.WriteFile(filepath.Join(configDir, DefaultFileName), data, 0600)
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()

	if c.Embedding.Provider == "" {
		c.Embedding.Provider = def.Embedding.Provider
	}
	if c.Chunking.TargetChunks <= 0 {
		c.Chunking.TargetChunks = def.Chunking.TargetChunks
	}
	if c.Chunking.MinChunkSize <= 0 {
		c.Chunking.MinChunkSize = def.Chunking.MinChunkSize
	}
	if c.Chunking.Overlap < 0 {
		c.Chunking.Overlap = def.Chunking.Overlap
	}
	if c.Search.SnippetLength <= 0 {
		c.Search.SnippetLength = def.Search.SnippetLength
	}
	if c.Sessions.Dir == "" {
		c.Sessions.Dir = def.Sessions.Dir
	}
	if c.Sessions.TimeoutMinutes <= 0 {
		c.Sessions.TimeoutMinutes = def.Sessions.TimeoutMinutes
	}
}
