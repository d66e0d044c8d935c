package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/helpers"
)

var (
	exportFlags stateFlags
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the laws matching a filter selection as CSV",
	Long: `Export writes every law matching the year range, category filters and
search text. Without --out the file is named private_laws_{from}_{to}.csv;
use --out - for stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadTable()
		if err != nil {
			return err
		}
		state := exportFlags.state()
		view := engine.Matching(tbl, state, engineOptions()...)

		out := exportOut
		if out == "" {
			out = helpers.ExportFilename(state.YearStart, state.YearEnd)
		}
		if err := writeOutput(out, cmd.OutOrStdout(), func(w io.Writer) error {
			return helpers.WriteCSV(w, view)
		}); err != nil {
			return err
		}
		logger.Info("exported", zap.String("file", out), zap.Int("rows", view.Len()))
		return nil
	},
}

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file (- for stdout)")
}

// writeOutput runs write against path, or against stdout when path is "-".
func writeOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "-" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
