package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Alan-Collins/SpellTower-solver/internal/services/puzzle"
)

var (
	cfg    *Config
	client *Client
	local  *localBackend
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	client = nil
	local = nil
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	rootCmd := &cobra.Command{
		Use:   "spelltower",
		Short: "Greedy solver for SpellTower word grids",
		Long: `spelltower finds the words on a SpellTower grid and plays them greedily,
highest scoring first, until no word remains.

Puzzles are YAML files (rows of grid notation or tile arrays) or plain text
with one row per line, top row first. Upper-case letters are normal tiles,
lower-case letters bonus tiles, '#' blockers and '.' empty slots.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadApp(cmd.Flags()); err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = newLogger(cmd.ErrOrStderr(), cfg.App.Log.Format, level)

			// Create HTTP client
			if cfg.Remote() {
				client = NewClient(cfg.ServerURL)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if local != nil {
				return local.Close()
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "Config file (env: SPELLTOWER_CONFIG)")
	flags.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Send work to this server instead of solving locally (env: SPELLTOWER_SERVER)")
	flags.StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")
	flags.String("dictionary", "", "Word list path (env: SPELLTOWER_DICTIONARY)")
	flags.String("scoring", "", "Scoring table YAML (env: SPELLTOWER_SCORING)")
	flags.Int("workers", 1, "Start tiles searched in parallel")
	flags.Int("max-path", 0, "Longest word considered; 0 means no limit")
	flags.Int("min-length", 2, "Shortest word considered")

	// Add subcommands
	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newPuzzleCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

func newLogger(w io.Writer, format string, level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// readSpec decodes a puzzle file; "-" reads stdin
func readSpec(cmd *cobra.Command, path string) (puzzle.Spec, error) {
	if path == "-" {
		return puzzle.Decode(cmd.InOrStdin())
	}
	f, err := os.Open(path)
	if err != nil {
		return puzzle.Spec{}, err
	}
	defer f.Close()
	return puzzle.Decode(f)
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		NewOutput(cfg.Output).PrintError(err)
		stop()
		os.Exit(1)
	}
}
