package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/config"
	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
	"github.com/spektr-org/privlaw/helpers"
	"github.com/spektr-org/privlaw/logging"
	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// PRIVLAW CLI — Private Laws dashboard and tooling
// ============================================================================

var version = "0.1.0"

var (
	// Global flags
	configPath string
	dataFile   string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger

	// dataset describes the input columns and both vocabularies.
	dataset = schema.Default()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "privlaw",
	Short: "Private Laws of the United States: dashboard, export and summaries",
	Long: `privlaw loads a catalog of Private Laws enacted by the U.S. Congress,
serves an interactive dashboard over it, and exports filtered selections.

Configuration is read from privlaw.yaml (or --config) and can be overridden
with PRIVLAW_DATA_FILE, PRIVLAW_LISTEN, PRIVLAW_USE_SAMPLE and PRIVLAW_LOG_LEVEL.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if dataFile != "" {
			loaded.Data.File = dataFile
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded

		logger, err = logging.New(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().StringVarP(&dataFile, "data", "d", "", "CSV data file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(sampleCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if hint := errs.HintOf(err); hint != "" {
			fmt.Fprintln(os.Stderr, "hint:", hint)
		}
		os.Exit(1)
	}
}

// loadTable reads the configured data file. When the file is unavailable
// and the sample fallback is enabled, a synthetic table is generated instead.
func loadTable() (*engine.Table, error) {
	tbl, err := helpers.LoadFile(cfg.Data.File, helpers.WithLogger(logger), helpers.WithSchema(dataset))
	if err == nil {
		return tbl, nil
	}
	if !errors.Is(err, errs.ErrDataUnavailable) || !cfg.Data.UseSampleIfMissing {
		return nil, err
	}
	logger.Warn("data file unavailable, using sample data",
		zap.String("file", cfg.Data.File),
		zap.Int("size", cfg.Data.SampleSize),
		zap.Int64("seed", cfg.Data.SampleSeed),
		zap.Error(err),
	)
	return helpers.GenerateSample(cfg.Data.SampleSize, cfg.Data.SampleSeed)
}

// engineOptions renders with the dataset vocabularies and the CLI logger.
func engineOptions() []engine.Option {
	return []engine.Option{
		engine.WithLogger(logger),
		engine.WithVocabularies(dataset.Subjects, dataset.Reliefs),
	}
}

// stateFlags are the view-state flags shared by export and summary.
type stateFlags struct {
	from, to        int
	subject, relief string
	query, timeline string
}

func (f *stateFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.from, "from", engine.RangeMin, "First year (inclusive)")
	cmd.Flags().IntVar(&f.to, "to", engine.RangeMax, "Last year (inclusive)")
	cmd.Flags().StringVar(&f.subject, "subject", "", "Subject matter label")
	cmd.Flags().StringVar(&f.relief, "relief", "", "Relief type label")
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "Case-insensitive search text")
	cmd.Flags().StringVar(&f.timeline, "timeline", engine.TimelineYear, "Timeline unit: year or session")
}

func (f *stateFlags) state() engine.ViewState {
	s := engine.DefaultViewState()
	s.YearStart, s.YearEnd = f.from, f.to
	s.Subject, s.Relief, s.Query = f.subject, f.relief, f.query
	s.Timeline = f.timeline
	return engine.NormalizeViewState(s)
}
