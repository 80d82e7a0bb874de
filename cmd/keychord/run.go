package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/keychord/internal/app"
)

var noWatch bool

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Match the keyset against key presses in the terminal",
		Long: `The run command takes over the terminal, shows the keyset's bindings
and reports each action as its shortcut completes. Action scripts run as
their action fires. The keyset is reloaded when its file changes.

Press q or Control+c to quit, unless the keyset binds those keys.

Example:
  keychord run -c keys.toml
  keychord run -c keys.yaml --log-file keychord.log --log-level debug`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload the keyset when it changes")
	return cmd
}

func runRun(ctx context.Context) error {
	ks, err := loadKeyset()
	if err != nil {
		return err
	}

	// The terminal is ours while running; logs go nowhere without --log-file.
	logger, closeLog, err := newLogger(ks, io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	application, err := app.New(app.Options{
		Keyset: ks,
		Logger: logger,
		Watch:  !noWatch,
	})
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
