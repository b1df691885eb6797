// Package cli builds the storagefinder command tree.
//
// Configuration comes from persistent flags, STORAGEFINDER_* environment
// variables and .env / .env.local files, in that order of precedence.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/EmilIverskog/storageFinder/internal/inventory"
	"github.com/EmilIverskog/storageFinder/internal/store"
)

// EnvPrefix is prepended to every environment variable the CLI reads.
const EnvPrefix = "storagefinder"

// RootOptions holds the resolved global configuration for all commands.
type RootOptions struct {
	Version string
	v       *viper.Viper
}

// StoreConfig resolves the store configuration from flags and environment.
func (o *RootOptions) StoreConfig() store.Config {
	cfg := store.DefaultConfig()
	if dir := o.v.GetString("data-dir"); dir != "" {
		cfg.DataDir = dir
	}
	if backend := o.v.GetString("backend"); backend != "" {
		cfg.Backend = backend
	}
	cfg.DSN = o.v.GetString("dsn")
	return cfg
}

// ExportDir is where exports land unless a command overrides it.
func (o *RootOptions) ExportDir() string {
	if dir := o.v.GetString("export-dir"); dir != "" {
		return dir
	}
	return "."
}

// openService opens the configured store; callers close the returned Store.
func (o *RootOptions) openService() (*inventory.Service, *store.Store, error) {
	s, err := store.Open(o.StoreConfig())
	if err != nil {
		return nil, nil, WrapExitError(ExitFailure, "open store", err)
	}
	return inventory.NewService(s), s, nil
}

// NewRootCommand creates the root command. Running it without a subcommand
// starts the terminal UI.
func NewRootCommand(version string) *cobra.Command {
	opts := &RootOptions{Version: version, v: viper.New()}

	cmd := &cobra.Command{
		Use:   "storagefinder",
		Short: "Find where every component is stored",
		Long: `storagefinder maps component IDs to their storage locations.

Run without arguments to open the interactive terminal UI, or use the
subcommands below for scripting and agent integration.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(opts.v, cmd); err != nil {
				return err
			}
			if err := validateBackend(opts.v.GetString("backend")); err != nil {
				return err
			}
			// The terminal UI owns stdout and stderr; it sets up its own log file.
			if cmd.Name() == "tui" || cmd == cmd.Root() {
				return nil
			}
			return setupLogging(cmd.ErrOrStderr(), opts.v.GetString("log-level"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}

	cmd.PersistentFlags().String("data-dir", "", "directory holding the database and log file (default ~/.storagefinder)")
	cmd.PersistentFlags().String("backend", store.BackendSQLite, "storage backend (sqlite|postgres|memory)")
	cmd.PersistentFlags().String("dsn", "", "postgres connection string")
	cmd.PersistentFlags().String("export-dir", "", "directory for export files (default current directory)")
	cmd.PersistentFlags().String("log-level", "info", "log level (debug|info|warn|error)")

	cmd.AddCommand(NewTUICommand(opts))
	cmd.AddCommand(NewSearchCommand(opts))
	cmd.AddCommand(NewGetCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewMCPCommand(opts))
	cmd.AddCommand(NewSetupCommand(opts))
	cmd.AddCommand(NewVersionCommand(opts))

	return cmd
}

// Execute runs the command tree against os.Args and returns the process exit
// code.
func Execute(version string) int {
	cmd := NewRootCommand(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "storagefinder: %s\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

// initConfig loads .env files and binds the flags of cmd to v.
func initConfig(v *viper.Viper, cmd *cobra.Command) error {
	// Missing .env files are fine
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v.BindPFlags(cmd.Flags())
}

func validateBackend(name string) error {
	switch name {
	case "", store.BackendSQLite, store.BackendPostgres, store.BackendMemory:
		return nil
	}
	return NewExitError(ExitCommandError, fmt.Sprintf("unknown backend %q (supported: sqlite, postgres, memory)", name))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid log level %q", s))
	}
	return level, nil
}

// setupLogging installs a text slog handler writing to w as the default logger.
func setupLogging(w io.Writer, levelName string) error {
	level, err := parseLevel(levelName)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return nil
}

// openLogFile opens <dataDir>/storagefinder.log for appending.
func openLogFile(dataDir string) (*os.File, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dataDir, "storagefinder.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
}
