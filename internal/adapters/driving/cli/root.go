// Package cli provides the cobra command-line interface for meetsearch.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/meetsearch/internal/adapters/driven/config/file"
	"github.com/custodia-labs/meetsearch/internal/adapters/driven/embedding/ollama"
	"github.com/custodia-labs/meetsearch/internal/adapters/driven/embedding/openai"
	storagefile "github.com/custodia-labs/meetsearch/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/meetsearch/internal/adapters/driven/vector/flat"
	"github.com/custodia-labs/meetsearch/internal/chunker"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driven"
	"github.com/custodia-labs/meetsearch/internal/core/ports/driving"
	"github.com/custodia-labs/meetsearch/internal/core/services"
	"github.com/custodia-labs/meetsearch/internal/logger"
)

const version = "0.3.0"

// Wired services, set up in initServices before any command runs.
var (
	cfg            *configfile.Config
	sessionService driving.SessionService
)

var (
	flagVerbose     bool
	flagConfigDir   string
	flagSessionsDir string
)

var rootCmd = &cobra.Command{
	Use:   "meetsearch",
	Short: "Session-scoped semantic search over meeting content",
	Long: `Meetsearch indexes meeting transcripts and their derived insights
(summaries, action items, decisions, timelines) into per-session vector
indexes and serves filtered semantic search over them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.meetsearch)")
	rootCmd.PersistentFlags().StringVar(&flagSessionsDir, "sessions-dir", "", "sessions root directory (overrides config)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the driven adapters into the core services.
func initServices() error {
	var err error
	cfg, err = configfile.Load(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sessionsDir := cfg.Sessions.Dir
	if flagSessionsDir != "" {
		sessionsDir = flagSessionsDir
	}

	sessionStore, err := storagefile.NewSessionStore(sessionsDir)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	embedder, err := newEmbedder(cfg.Embedding)
	if err != nil {
		// Degraded mode: commands still run, searches return empty.
		logger.Warn("Embedding service unavailable: %v", err)
		embedder = nil
	}

	sessionService = services.NewSessionManager(
		sessionStore,
		newEngineFactory(embedder),
		services.WithSessionTimeout(cfg.Sessions.Timeout()),
	)
	return nil
}

// newEngineFactory builds per-session search engines rooted at the
// session's index directory.
func newEngineFactory(embedder driven.EmbeddingService) services.EngineFactory {
	return func(indexPath string) (driving.SearchService, error) {
		dimensions := 0
		if embedder != nil {
			dimensions = embedder.Dimensions()
		}

		var index driven.VectorIndex
		if dimensions > 0 {
			var err error
			index, err = flat.New(filepath.Join(indexPath, flat.IndexFileName), dimensions)
			if err != nil {
				return nil, err
			}
		}

		chunks, err := storagefile.NewChunkStore(indexPath)
		if err != nil {
			return nil, err
		}

		return services.NewSearchEngine(index, chunks, embedder,
			services.WithChunker(chunker.New(
				chunker.WithTargetChunks(cfg.Chunking.TargetChunks),
				chunker.WithMinChunkSize(cfg.Chunking.MinChunkSize),
				chunker.WithOverlap(cfg.Chunking.Overlap),
			)),
			services.WithSnippetLength(cfg.Search.SnippetLength),
		), nil
	}
}

func newEmbedder(cfg configfile.EmbeddingConfig) (driven.EmbeddingService, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewEmbeddingService(openai.Config{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		})
	case "", "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			Dimensions: cfg.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
}
