package schema

// ============================================================================
// SCHEMA — Describes the shape of the private laws dataset
// ============================================================================
// The loader uses column metadata to map CSV headers onto Record fields.
// The engine uses the two closed vocabularies for counting and filtering.
// The export writer uses ExportKeys for its column subset and order.
// ============================================================================

// Column keys as they appear after header normalization.
const (
	ColumnID          = "id"
	ColumnSession     = "congress"
	ColumnVolume      = "volume"
	ColumnChapter     = "chapter"
	ColumnTitle       = "title"
	ColumnDate        = "date"
	ColumnYear        = "year"
	ColumnSubject     = "subject_category"
	ColumnRelief      = "relief_category"
	ColumnSummary     = "summary"
	ColumnPDFLink     = "pdf_link"
	ColumnDetailsLink = "details_link"
)

// Config describes the complete shape of a dataset.
type Config struct {
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Columns     []ColumnMeta `json:"columns"`

	Subjects Vocabulary `json:"subjects"`
	Reliefs  Vocabulary `json:"reliefs"`
}

// ColumnMeta describes one input/export column.
type ColumnMeta struct {
	Key         string   `json:"key"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"` // alternative snake_case header names
	Kind        string   `json:"kind"`              // "int", "text", "date", "labels"
	Required    bool     `json:"required,omitempty"`
	Exported    bool     `json:"exported,omitempty"`
}

// SkippedColumn records why an input column was not mapped.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Default returns the private laws dataset description with both vocabularies.
func Default() Config {
	return Config{
		Name:        "Private Laws",
		Description: "Congressional private laws, 1789-2025",
		Columns: []ColumnMeta{
			{Key: ColumnID, DisplayName: "ID", Kind: "int"},
			{Key: ColumnSession, DisplayName: "Congress", Aliases: []string{"session_number", "session", "congress_number"}, Kind: "int", Exported: true},
			{Key: ColumnVolume, DisplayName: "Volume", Kind: "int", Exported: true},
			{Key: ColumnChapter, DisplayName: "Chapter", Kind: "int", Exported: true},
			{Key: ColumnTitle, DisplayName: "Title", Kind: "text", Required: true, Exported: true},
			{Key: ColumnDate, DisplayName: "Date", Aliases: []string{"enactment_date", "date_enacted"}, Kind: "date", Exported: true},
			{Key: ColumnYear, DisplayName: "Year", Kind: "int", Exported: true},
			{Key: ColumnSubject, DisplayName: "Subject", Aliases: []string{"subject_labels", "subject", "subjects"}, Kind: "labels", Exported: true},
			{Key: ColumnRelief, DisplayName: "Relief", Aliases: []string{"relief_labels", "relief", "reliefs"}, Kind: "labels", Exported: true},
			{Key: ColumnSummary, DisplayName: "Summary", Kind: "text", Exported: true},
			{Key: ColumnPDFLink, DisplayName: "PDF", Kind: "text", Exported: true},
			{Key: ColumnDetailsLink, DisplayName: "Details", Kind: "text", Exported: true},
		},
		Subjects: Subjects(),
		Reliefs:  Reliefs(),
	}
}

// ExportKeys returns the keys written by the CSV export, in order.
func (c Config) ExportKeys() []string {
	keys := make([]string, 0, len(c.Columns))
	for _, col := range c.Columns {
		if col.Exported {
			keys = append(keys, col.Key)
		}
	}
	return keys
}
