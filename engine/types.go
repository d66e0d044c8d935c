package engine

import (
	"time"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// ENGINE TYPES — Private laws records, view state, render-ready output
// ============================================================================
// Record is a fixed-shape row validated once at load time.
// ViewState is threaded explicitly through every render call.
// ViewModel is what presentation layers consume.
// ============================================================================

// SentinelYear is assigned when neither a year column nor a parseable date
// exists for a row. It lies outside every valid year range.
const SentinelYear = 0

// DateLayout is the canonical date text used for search, tables and export.
const DateLayout = "2006-01-02"

// ============================================================================
// RECORD
// ============================================================================

// Record is one legislative enactment.
type Record struct {
	ID          int       `json:"id"`
	Session     int       `json:"congress"`
	Volume      int       `json:"volume"`
	Chapter     int       `json:"chapter"`
	Title       string    `json:"title"`
	Date        time.Time `json:"-"`
	DateValid   bool      `json:"-"`
	DateRaw     string    `json:"-"`
	Year        int       `json:"year"`
	Subjects    string    `json:"subject_category"`
	Reliefs     string    `json:"relief_category"`
	Summary     string    `json:"summary"`
	PDFLink     string    `json:"pdf_link"`
	DetailsLink string    `json:"details_link"`
}

// DateString returns the date as YYYY-MM-DD, or the raw source text when the
// date could not be parsed.
func (r *Record) DateString() string {
	if r.DateValid {
		return r.Date.Format(DateLayout)
	}
	return r.DateRaw
}

// Field names a raw label column.
type Field string

const (
	FieldSubject Field = schema.ColumnSubject
	FieldRelief  Field = schema.ColumnRelief
)

// Labels returns the raw label text for a category field.
func (r *Record) Labels(f Field) string {
	switch f {
	case FieldSubject:
		return r.Subjects
	case FieldRelief:
		return r.Reliefs
	default:
		return ""
	}
}

// ============================================================================
// LOAD REPORT
// ============================================================================

// LoadReport summarizes normalization decisions made while loading.
type LoadReport struct {
	Source           string                 `json:"source"`
	Rows             int                    `json:"rows"`
	DateStrategy     string                 `json:"dateStrategy"` // "format", "generic", "absent"
	DateFormat       string                 `json:"dateFormat,omitempty"`
	YearSource       string                 `json:"yearSource"` // "column", "date"
	SessionSource    string                 `json:"sessionSource"`
	IDsAssigned      bool                   `json:"idsAssigned"`
	SentinelYearRows int                    `json:"sentinelYearRows"`
	CoercedIntegers  int                    `json:"coercedIntegers"`
	SkippedColumns   []schema.SkippedColumn `json:"skippedColumns,omitempty"`
	Synthetic        bool                   `json:"synthetic,omitempty"`
}

// ============================================================================
// VIEW STATE
// ============================================================================

// Timeline modes.
const (
	TimelineYear    = "year"
	TimelineSession = "session"
)

// Page sizes offered by the table.
var PageSizes = []int{10, 20, 50, 100}

// DefaultPageSize is used when a view state carries no valid page size.
const DefaultPageSize = 20

// ViewState is one user's current filter and pagination selections.
type ViewState struct {
	YearStart  int    `json:"yearStart"`
	YearEnd    int    `json:"yearEnd"`
	Subject    string `json:"subject,omitempty"`
	Relief     string `json:"relief,omitempty"`
	Query      string `json:"query,omitempty"`
	Timeline   string `json:"timeline"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	SelectedID int    `json:"selectedId,omitempty"`
}

// Filters returns the record predicates carried by the view state.
func (s ViewState) Filters() Filters {
	return Filters{
		YearStart: s.YearStart,
		YearEnd:   s.YearEnd,
		Subject:   s.Subject,
		Relief:    s.Relief,
		Query:     s.Query,
	}
}

// ============================================================================
// VIEW MODEL — Render-ready output
// ============================================================================

// ViewModel is the full dashboard state derived from a Table and a ViewState.
type ViewModel struct {
	State   ViewState `json:"state"`
	Header  string    `json:"header"`
	Total   int       `json:"total"`   // year + category filters
	Matches int       `json:"matches"` // total narrowed by search

	FilterActive bool `json:"filterActive"`

	Timeline      Timeline     `json:"timeline"`
	TimelineChart *ChartConfig `json:"timelineChart,omitempty"`
	Subjects      Breakdown    `json:"subjects"`
	SubjectChart  *ChartConfig `json:"subjectChart,omitempty"`
	Reliefs       Breakdown    `json:"reliefs"`
	ReliefChart   *ChartConfig `json:"reliefChart,omitempty"`
	Page          Page         `json:"page"`
	Detail        *Detail      `json:"detail,omitempty"`
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group is one histogram bucket.
type Group struct {
	Key   int        `json:"key"`
	Label string     `json:"label"`
	Count int        `json:"count"`
	View  RecordView `json:"-"`
}

// Timeline is the count-per-unit histogram.
type Timeline struct {
	Mode      string  `json:"mode"`
	Groups    []Group `json:"groups"`
	Selection []Group `json:"selection,omitempty"` // present when a category filter is active
	Highlight bool    `json:"highlight"`
}

// ============================================================================
// BREAKDOWN
// ============================================================================

// CategoryCount is one vocabulary label with its assignment count.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BreakdownRow is one label of a category breakdown.
type BreakdownRow struct {
	Label       string  `json:"label"`
	ChartLabel  string  `json:"chartLabel"`
	TableLabel  string  `json:"tableLabel"`
	Count       int     `json:"count"`
	CountText   string  `json:"countText"`
	Percent     float64 `json:"percent"`
	PercentText string  `json:"percentText"`
	Selected    bool    `json:"selected"`
}

// Breakdown is the per-category distribution for one vocabulary.
type Breakdown struct {
	Vocabulary string         `json:"vocabulary"`
	Rows       []BreakdownRow `json:"rows"`
	Total      int            `json:"total"` // total label assignments
	HasData    bool           `json:"hasData"`
	Selected   string         `json:"selected,omitempty"`
}

// ============================================================================
// CHART TYPES
// ============================================================================

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ChartType   string        `json:"chartType"`
	Orientation string        `json:"orientation,omitempty"` // "v" (default) or "h"
	Title       string        `json:"title"`
	XAxis       string        `json:"xAxis,omitempty"`
	YAxis       string        `json:"yAxis,omitempty"`
	Series      []ChartSeries `json:"series"`
	ShowLegend  bool          `json:"showLegend"`
	ShowGrid    bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name   string       `json:"name"`
	Data   []ChartPoint `json:"data"`
	Color  string       `json:"color,omitempty"`
	Colors []string     `json:"colors,omitempty"` // per-point colors
}

// ChartPoint represents a single data point.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Text  string  `json:"text,omitempty"`
	Hover string  `json:"hover,omitempty"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// PageRow is one table row.
type PageRow struct {
	ID       int    `json:"id"`
	Session  int    `json:"congress"`
	Volume   int    `json:"volume"`
	Chapter  int    `json:"chapter"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Subject  string `json:"subject"`
	Selected bool   `json:"selected,omitempty"`
}

// Page is one page of matching records.
type Page struct {
	Columns   []Column  `json:"columns"`
	Rows      []PageRow `json:"rows"`
	Page      int       `json:"page"`
	PageSize  int       `json:"pageSize"`
	PageCount int       `json:"pageCount"`
	TotalRows int       `json:"totalRows"`
}

// ============================================================================
// DETAIL
// ============================================================================

// Detail is the info panel for one selected record.
type Detail struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Congress    string `json:"congress"`
	Volume      string `json:"volume"`
	Chapter     string `json:"chapter"`
	Subjects    string `json:"subjects"`
	Reliefs     string `json:"reliefs"`
	Summary     string `json:"summary"`
	PDFLink     string `json:"pdfLink"`
	DetailsLink string `json:"detailsLink"`
}
