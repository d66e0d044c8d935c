package engine

import (
	"strings"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// FILTERS — Year range, category and search predicates via RecordView
// ============================================================================
// Single-pass filter: checks ALL constraints per record in one loop.
// Returns a SubView (index list into parent) — zero data copy, table order kept.
// ============================================================================

// Filters holds the record predicates of a view state.
// Empty Subject, Relief or Query means no restriction on that predicate.
type Filters struct {
	YearStart int
	YearEnd   int
	Subject   string
	Relief    string
	Query     string
}

// YearOnly drops every predicate except the year range.
func (f Filters) YearOnly() Filters {
	return Filters{YearStart: f.YearStart, YearEnd: f.YearEnd}
}

// WithoutQuery drops the search predicate.
func (f Filters) WithoutQuery() Filters {
	f.Query = ""
	return f
}

// CategoryActive reports whether a subject or relief label is selected.
func (f Filters) CategoryActive() bool {
	return f.Subject != "" || f.Relief != ""
}

// ApplyFilters returns a view of records matching all predicates.
// A category label outside its vocabulary matches nothing. The search is a
// case-insensitive substring test OR-ed across title, date, subjects and reliefs.
func ApplyFilters(view RecordView, f Filters, opts ...Option) RecordView {
	cfg := applyOptions(opts)

	if f.YearStart > f.YearEnd {
		return newSubView(view, nil)
	}

	subject, ok := resolveLabel(cfg.subjects, f.Subject)
	if !ok {
		cfg.logger.Debug("subject outside vocabulary")
		return newSubView(view, nil)
	}
	relief, ok := resolveLabel(cfg.reliefs, f.Relief)
	if !ok {
		cfg.logger.Debug("relief outside vocabulary")
		return newSubView(view, nil)
	}
	query := strings.ToLower(f.Query)

	n := view.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		r := view.At(i)
		if r.Year < f.YearStart || r.Year > f.YearEnd {
			continue
		}
		if subject != "" && !strings.Contains(r.Subjects, subject) {
			continue
		}
		if relief != "" && !strings.Contains(r.Reliefs, relief) {
			continue
		}
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		indices = append(indices, i)
	}

	return newSubView(view, indices)
}

// resolveLabel returns the canonical vocabulary label, or false when the label
// is not in the vocabulary. An empty label is valid and means "any".
func resolveLabel(v schema.Vocabulary, label string) (string, bool) {
	if label == "" {
		return "", true
	}
	i := v.IndexOf(label)
	if i < 0 {
		return "", false
	}
	return v.Label(i), true
}

// matchesQuery expects query already lowercased.
func matchesQuery(r *Record, query string) bool {
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.DateString()), query) ||
		strings.Contains(strings.ToLower(r.Subjects), query) ||
		strings.Contains(strings.ToLower(r.Reliefs), query)
}
