// Package cli implements the vecdb command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agenttools/vecdb/config"
	"github.com/agenttools/vecdb/internal/embedding"
	"github.com/agenttools/vecdb/pkg/core"
)

var (
	cfgFile string
	dbPath  string
	cfg     *config.Config
	logger  core.Logger
)

var rootCmd = &cobra.Command{
	Use:   "vecdb",
	Short: "Embedding-indexed document store with cosine similarity search",
	Long: `vecdb stores text documents with their embeddings in a single SQLite file
and answers nearest-neighbor queries by exact cosine-similarity scan.

Example usage:
  vecdb write --collection notes --text "hello world"
  vecdb query --collection notes --query "hello" --n-results 3`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dbPath != "" {
			cfg.DB.Path = dbPath
		}
		logger = newLogger(cfg.Logging)
		return nil
	},
}

// Execute runs the root command. Argument validation failures exit non-zero;
// operation failures are reported as JSON error envelopes on stdout instead.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "vecdb.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file path (overrides config)")
}

// openStore builds the configured embedder and opens the store around it.
// Every command invocation gets its own short-lived store session.
func openStore(cmd *cobra.Command) (*core.Store, error) {
	embedder, err := embedding.New(cfg.Embedding)
	if err != nil {
		return nil, err
	}

	store, err := core.New(cfg.DB.Path, embedder, core.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	if err := store.Init(cmd.Context()); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

func newLogger(lc config.LoggingConfig) core.Logger {
	w := io.Writer(os.Stderr)
	if lc.File != "" {
		if f, err := os.OpenFile(lc.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			w = io.MultiWriter(os.Stderr, f)
		}
	}
	return core.NewLogger(w, core.ParseLogLevel(lc.Level))
}

// errorEnvelope is the structured failure result printed on stdout.
type errorEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func printJSON(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(string(data))
}

func printError(err error) {
	printJSON(errorEnvelope{Status: "error", Message: err.Error()})
}
