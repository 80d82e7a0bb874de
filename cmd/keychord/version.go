package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"

	"github.com/dshills/keychord/internal/input/key"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			platform := key.DetectPlatform()
			if jsonOut {
				out := `{}`
				var err error
				for _, kv := range [][2]string{
					{"version", version},
					{"commit", commit},
					{"date", date},
					{"go", runtime.Version()},
					{"platform", platform.String()},
				} {
					if out, err = sjson.Set(out, kv[0], kv[1]); err != nil {
						return err
					}
				}
				_, err = fmt.Fprintln(w, out)
				return err
			}
			fmt.Fprintf(w, "keychord %s (commit %s, built %s)\n", version, commit, date)
			fmt.Fprintf(w, "%s, $mod is %s\n", runtime.Version(), platform.ModAliasTarget().Name())
			return nil
		},
	}
}
