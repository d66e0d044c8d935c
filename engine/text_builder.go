package engine

import (
	"fmt"
	"strconv"
)

// ============================================================================
// TEXT BUILDER — Produces Detail and header text
// ============================================================================

// DetailDateLayout renders enactment dates in the info panel.
const DetailDateLayout = "January 02, 2006"

const (
	notCategorized = "Not categorized"
	noSummary      = "No summary available."
	emptyLink      = "#"
)

// BuildDetail produces the info panel for the record with id, or nil when the
// table has no such record.
func BuildDetail(t *Table, id int) *Detail {
	if id == 0 {
		return nil
	}
	r, ok := t.Lookup(id)
	if !ok {
		return nil
	}

	date := r.DateRaw
	if r.DateValid {
		date = r.Date.Format(DetailDateLayout)
	}

	return &Detail{
		ID:          r.ID,
		Title:       r.Title,
		Date:        date,
		Congress:    Ordinal(r.Session),
		Volume:      strconv.Itoa(r.Volume),
		Chapter:     strconv.Itoa(r.Chapter),
		Subjects:    orDefault(r.Subjects, notCategorized),
		Reliefs:     orDefault(r.Reliefs, notCategorized),
		Summary:     orDefault(r.Summary, noSummary),
		PDFLink:     orDefault(r.PDFLink, emptyLink),
		DetailsLink: orDefault(r.DetailsLink, emptyLink),
	}
}

// BuildHeader returns the breakdown section header for a year range.
func BuildHeader(start, end int) string {
	return fmt.Sprintf("Breakdown (%d - %d)", start, end)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
