package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/logging"
)

var (
	// Global flags
	configPath string
	logLevel   string
	logFile    string
	jsonOut    bool
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keychord",
		Short: "Bind keyboard shortcuts and key sequences to actions",
		Long: `keychord loads a keyset of named actions and their shortcuts
("$mod+k", "g g", "Shift+D") and matches them against key presses in the
terminal. Keysets are TOML, YAML or JSON files.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "keys.toml", "Keyset file")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides the keyset")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to this file")
	cmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")

	cmd.AddCommand(newRunCmd(), newCheckCmd(), newExportCmd(), newVersionCmd())
	return cmd
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadKeyset loads the keyset named by --config with environment overrides.
func loadKeyset() (*config.Keyset, error) {
	return config.LoadWithEnv(configPath)
}

// newLogger builds the logger for ks. Logs go to --log-file, or to fallback
// when no file is given.
func newLogger(ks *config.Keyset, fallback io.Writer) (*logging.Logger, func(), error) {
	level := ks.LogLevel()
	if logLevel != "" {
		level = logging.ParseLevel(logLevel)
	}

	out := fallback
	closeFn := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	cfg := logging.DefaultConfig()
	cfg.Level = level
	cfg.Output = out
	return logging.New(cfg), closeFn, nil
}
