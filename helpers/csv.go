package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/araddon/dateparse"
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// CSV LOADER — Parses a private laws CSV into an immutable engine.Table
// ============================================================================
// The whole file is read before any row is normalized: the date format is a
// column-level decision and needs every value up front.
// ============================================================================

// Date strategies reported in engine.LoadReport.
const (
	DateStrategyFormat  = "format"
	DateStrategyGeneric = "generic"
	DateStrategyAbsent  = "absent"
)

// LoadOption configures Load and LoadFile.
type LoadOption func(*loadConfig)

type loadConfig struct {
	logger *zap.Logger
	schema schema.Config
	source string
}

// WithLogger routes load diagnostics to logger.
func WithLogger(logger *zap.Logger) LoadOption {
	return func(c *loadConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSchema replaces the default column description.
func WithSchema(sch schema.Config) LoadOption {
	return func(c *loadConfig) { c.schema = sch }
}

// WithSource names the input in the load report and log lines.
func WithSource(name string) LoadOption {
	return func(c *loadConfig) { c.source = name }
}

func applyLoadOptions(opts []LoadOption) *loadConfig {
	cfg := &loadConfig{
		logger: zap.NewNop(),
		schema: schema.Default(),
		source: "reader",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadFile opens path and loads it. A file that cannot be opened is reported
// as data unavailable so callers can fall back to sample data.
func LoadFile(path string, opts ...LoadOption) (*engine.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(
			fmt.Errorf("open data file: %w", err),
			errs.CategoryDataUnavailable, "source_unavailable",
			"check data.file or enable data.use_sample_if_missing",
		)
	}
	defer f.Close()

	return Load(f, append([]LoadOption{WithSource(path)}, opts...)...)
}

// Load parses CSV text into a Table.
func Load(r io.Reader, opts ...LoadOption) (*engine.Table, error) {
	cfg := applyLoadOptions(opts)
	log := cfg.logger.With(zap.String("source", cfg.source))

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, errs.Wrap(errors.New("input has no header row"),
			errs.CategoryMalformedRecord, "empty_input", "")
	}
	if err != nil {
		return nil, readFailure("read header", err)
	}

	cols, skipped, err := cfg.schema.ResolveColumns(headers)
	if err != nil {
		return nil, errs.Wrap(err, errs.CategoryMalformedRecord, "missing_column", "the input needs a title column")
	}
	for _, s := range skipped {
		log.Debug("skipping column", zap.String("column", s.Column), zap.String("reason", s.Reason))
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, readFailure("read rows", err)
	}

	report := engine.LoadReport{
		Source:         cfg.source,
		SkippedColumns: skipped,
	}
	report.YearSource = sourceOf(cols, schema.ColumnYear, "date")
	report.SessionSource = sourceOf(cols, schema.ColumnSession, "year")

	n := &normalizer{cols: cols, report: &report, log: log}
	n.chooseDates(rows)

	records := make([]engine.Record, 0, len(rows))
	for i, row := range rows {
		rec, err := n.record(i, row)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if report.SentinelYearRows > 0 {
		log.Warn("rows without a usable year",
			zap.Int("rows", report.SentinelYearRows),
			zap.Int("sentinel_year", engine.SentinelYear))
	}
	if report.CoercedIntegers > 0 {
		log.Warn("non-numeric integer fields set to 0", zap.Int("fields", report.CoercedIntegers))
	}

	table, err := engine.NewTable(records, report)
	if err != nil {
		return nil, err
	}
	lo, hi := table.YearBounds()
	log.Info("loaded records",
		zap.Int("rows", table.Len()),
		zap.Int("year_min", lo),
		zap.Int("year_max", hi),
		zap.String("date_strategy", report.DateStrategy))
	return table, nil
}

// ============================================================================
// ROW NORMALIZATION
// ============================================================================

type normalizer struct {
	cols   schema.ColumnIndex
	report *engine.LoadReport
	log    *zap.Logger
	layout string
}

// chooseDates picks one format for the whole date column, or the generic
// per-row parser when no format fits every value.
func (n *normalizer) chooseDates(rows [][]string) {
	if !n.cols.Has(schema.ColumnDate) {
		n.report.DateStrategy = DateStrategyAbsent
		return
	}
	values := make([]string, len(rows))
	for i, row := range rows {
		values[i] = n.cols.Value(row, schema.ColumnDate)
	}
	if f, ok := schema.DetectDateFormat(values); ok {
		n.layout = f.Layout
		n.report.DateStrategy = DateStrategyFormat
		n.report.DateFormat = f.Pattern
		n.log.Info("parsed dates with format", zap.String("format", f.Pattern))
		return
	}
	n.report.DateStrategy = DateStrategyGeneric
	n.log.Warn("no date format fits every row, parsing each date individually")
}

func (n *normalizer) record(i int, row []string) (engine.Record, error) {
	line := i + 2 // 1-based, after the header
	rec := engine.Record{
		Title:       n.cols.Value(row, schema.ColumnTitle),
		Subjects:    schema.Canonical(n.cols.Value(row, schema.ColumnSubject)),
		Reliefs:     schema.Canonical(n.cols.Value(row, schema.ColumnRelief)),
		Summary:     n.cols.Value(row, schema.ColumnSummary),
		PDFLink:     n.cols.Value(row, schema.ColumnPDFLink),
		DetailsLink: n.cols.Value(row, schema.ColumnDetailsLink),
	}

	if n.cols.Has(schema.ColumnID) {
		id, err := strictInt(n.cols.Value(row, schema.ColumnID))
		if err != nil {
			return rec, malformed(line, schema.ColumnID, err)
		}
		if id <= 0 {
			return rec, malformed(line, schema.ColumnID, fmt.Errorf("id %d is not positive", id))
		}
		rec.ID = id
	} else {
		rec.ID = i + 1
		n.report.IDsAssigned = true
	}

	n.parseDate(&rec, n.cols.Value(row, schema.ColumnDate))

	if n.cols.Has(schema.ColumnYear) {
		year, err := strictInt(n.cols.Value(row, schema.ColumnYear))
		if err != nil {
			return rec, malformed(line, schema.ColumnYear, err)
		}
		rec.Year = year
	} else {
		if rec.DateValid {
			rec.Year = rec.Date.Year()
		} else {
			rec.Year = engine.SentinelYear
			n.report.SentinelYearRows++
			n.log.Debug("unparseable date", zap.Int("line", line), zap.String("date", rec.DateRaw))
		}
	}

	rec.Volume = n.lenientInt(row, schema.ColumnVolume)
	rec.Chapter = n.lenientInt(row, schema.ColumnChapter)
	if n.cols.Has(schema.ColumnSession) {
		rec.Session = n.lenientInt(row, schema.ColumnSession)
	} else {
		rec.Session = SessionForYear(rec.Year)
	}
	return rec, nil
}

func (n *normalizer) parseDate(rec *engine.Record, raw string) {
	rec.DateRaw = raw
	if raw == "" {
		return
	}
	var (
		t   time.Time
		err error
	)
	if n.layout != "" {
		t, err = time.Parse(n.layout, raw)
	} else {
		t, err = dateparse.ParseIn(raw, time.UTC)
	}
	if err != nil {
		return
	}
	rec.Date = t
	rec.DateValid = true
}

// lenientInt returns 0 for empty or non-numeric text; the latter is counted.
func (n *normalizer) lenientInt(row []string, key string) int {
	v := n.cols.Value(row, key)
	if v == "" {
		return 0
	}
	i, err := strictInt(v)
	if err != nil {
		n.report.CoercedIntegers++
		return 0
	}
	return i
}

// strictInt accepts "1850" and integral floats such as "1850.0".
func strictInt(s string) (int, error) {
	if i, err := strconv.Atoi(s); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	if f != float64(int(f)) {
		return 0, fmt.Errorf("%q is not a whole number", s)
	}
	return int(f), nil
}

// readFailure separates CSV syntax errors from failures of the underlying reader.
func readFailure(stage string, err error) error {
	if errors.As(err, new(*csv.ParseError)) {
		return errs.Wrap(fmt.Errorf("%s: %w", stage, err), errs.CategoryMalformedRecord, "bad_csv", "")
	}
	return errs.Wrap(fmt.Errorf("%s: %w", stage, err), errs.CategoryDataUnavailable, "read_failed", "")
}

func malformed(line int, column string, cause error) error {
	return errs.Wrap(
		fmt.Errorf("line %d, column %s: %w", line, column, cause),
		errs.CategoryMalformedRecord, "bad_"+column,
		fmt.Sprintf("fix the %s value on line %d", column, line),
	)
}

func sourceOf(cols schema.ColumnIndex, key, derived string) string {
	if cols.Has(key) {
		return "column"
	}
	return derived
}

// SessionForYear derives the legislative session from a year.
// Sessions are two years long starting in 1789; other years give 0.
func SessionForYear(year int) int {
	if year < 1789 {
		return 0
	}
	return (year-1789)/2 + 1
}
