package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/dshills/keychord/internal/config"
	"github.com/dshills/keychord/internal/input/action"
	"github.com/dshills/keychord/internal/logging"
)

var checkFilter string

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a keyset and list its bindings",
		Long: `The check command validates every option and shortcut of the keyset
and lists the bindings in the order they are matched: longest shortcut
first.

Example:
  keychord check -c keys.toml
  keychord check -c keys.toml --filter 'nav.*' --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	cmd.Flags().StringVar(&checkFilter, "filter", "", "Only list actions whose ID matches this glob")
	return cmd
}

func runCheck(w, errW io.Writer) error {
	ks, err := loadKeyset()
	if err != nil {
		return err
	}
	if err := ks.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(ks, errW)
	if err != nil {
		return err
	}
	defer closeLog()

	entries, err := bindings(ks.Filter(checkFilter), logger)
	if err != nil {
		return err
	}

	if jsonOut {
		out := []byte(`{"bindings":[]}`)
		out, err = sjson.SetBytes(out, "source", ks.Source)
		for _, e := range entries {
			if err != nil {
				break
			}
			out, err = sjson.SetBytes(out, "bindings.-1", map[string]string{
				"shortcut": e.Shortcut,
				"action":   e.Action.ID,
				"name":     e.Action.Name,
			})
		}
		if err != nil {
			return err
		}
		_, err = w.Write(pretty.Pretty(out))
		return err
	}

	fmt.Fprintf(w, "%s: ok, %d bindings\n", ks.Source, len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "  %-20s %s\n", e.Shortcut, e.Action.Label())
	}
	return nil
}

// bindings returns the keyset's bindings in match priority order.
func bindings(ks *config.Keyset, logger *logging.Logger) ([]action.Entry, error) {
	opts := ks.ToResolverOptions()
	opts.Logger = logger
	r, err := action.NewResolver(ks.ActionMap(), func(action.Action) {}, opts)
	if err != nil {
		return nil, err
	}
	return r.Bindings(), nil
}
