package command

// root.go defines the root command for bookadmin.
// Global flags and shared setup live here.

import (
	"fmt"
	"log/slog"
	"os"

	"bookadmin/internal/config"
	"bookadmin/internal/store"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var envFile string // path to the .env file seeding the environment

// rootCmd represents the base command; running it without a subcommand
// starts the interactive session.
var rootCmd = &cobra.Command{
	Use:   "bookadmin",
	Short: "bookadmin - interactive admin console for the reading database",
	Long: `bookadmin is an operator console for a PostgreSQL database of users,
books, reading activity and book impressions. It offers:
- menu-driven CRUD with attribute search instead of typing ids
- bulk synthetic data generation
- multi-criteria and aggregate searches with query timing

Use "bookadmin [command] --help" to see all available commands.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShell(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "path to .env file")
	rootCmd.AddCommand(shellCmd, generateCmd, pingCmd)
}

// setup resolves configuration, builds the session logger and opens the
// store. Construction fails fast when DATABASE_URL is unset.
func setup() (*config.Config, *slog.Logger, *store.Store, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := newLogger(cfg)

	st, err := store.Open(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, st, nil
}

// newLogger builds the slog logger on stderr (stdout belongs to the menu)
// tagged with a fresh session id.
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler).With("session_id", uuid.NewString())
}
