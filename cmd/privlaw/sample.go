package main

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/helpers"
)

var (
	sampleSize int
	sampleSeed int64
	sampleOut  string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Write a synthetic Private Laws dataset as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := helpers.GenerateSample(sampleSize, sampleSeed)
		if err != nil {
			return err
		}
		if err := writeOutput(sampleOut, cmd.OutOrStdout(), func(w io.Writer) error {
			return helpers.WriteCSV(w, tbl)
		}); err != nil {
			return err
		}
		logger.Info("sample written", zap.String("file", sampleOut), zap.Int("rows", tbl.Len()), zap.Int64("seed", sampleSeed))
		return nil
	},
}

func init() {
	sampleCmd.Flags().IntVarP(&sampleSize, "n", "n", helpers.DefaultSampleSize, "Number of records")
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", helpers.DefaultSampleSeed, "Random seed")
	sampleCmd.Flags().StringVarP(&sampleOut, "out", "o", "-", "Output file (- for stdout)")
}
