package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	exportFilter string
	exportOutput string
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a keyset as JSON",
		Long: `The export command converts a keyset, with environment overrides
applied, to the JSON keyset format.

Example:
  keychord export -c keys.toml
  keychord export -c keys.yaml -o keys.json --filter 'nav.*'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&exportFilter, "filter", "", "Only export actions whose ID matches this glob")
	cmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func runExport(w io.Writer) error {
	ks, err := loadKeyset()
	if err != nil {
		return err
	}

	data, err := ks.Filter(exportFilter).ExportJSON()
	if err != nil {
		return err
	}

	if exportOutput != "" {
		return os.WriteFile(exportOutput, data, 0o644)
	}
	_, err = w.Write(data)
	return err
}
