package helpers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// CSV EXPORT — Writes a filtered view in the export column layout
// ============================================================================

// ExportFilename names an export by its year range.
func ExportFilename(start, end int) string {
	return fmt.Sprintf("private_laws_%d_%d.csv", start, end)
}

// WriteCSV writes the export header and one row per record of view.
// An empty view produces a header-only file.
func WriteCSV(w io.Writer, view engine.RecordView) error {
	keys := schema.Default().ExportKeys()

	cw := csv.NewWriter(w)
	if err := cw.Write(keys); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	row := make([]string, len(keys))
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		for j, key := range keys {
			row[j] = exportValue(r, key)
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write export row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func exportValue(r *engine.Record, key string) string {
	switch key {
	case schema.ColumnID:
		return strconv.Itoa(r.ID)
	case schema.ColumnSession:
		return strconv.Itoa(r.Session)
	case schema.ColumnVolume:
		return strconv.Itoa(r.Volume)
	case schema.ColumnChapter:
		return strconv.Itoa(r.Chapter)
	case schema.ColumnTitle:
		return r.Title
	case schema.ColumnDate:
		return r.DateString()
	case schema.ColumnYear:
		return strconv.Itoa(r.Year)
	case schema.ColumnSubject:
		return r.Subjects
	case schema.ColumnRelief:
		return r.Reliefs
	case schema.ColumnSummary:
		return r.Summary
	case schema.ColumnPDFLink:
		return r.PDFLink
	case schema.ColumnDetailsLink:
		return r.DetailsLink
	default:
		return ""
	}
}
