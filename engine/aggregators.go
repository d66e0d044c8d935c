package engine

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// AGGREGATORS — Grouping, Counting, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// ============================================================================

// Label widths used by the breakdown outputs.
const (
	ChartLabelWidth = 20
	TableLabelWidth = 22
)

// BuildTimeline groups a view by year or by session and counts each group.
// Groups are ordered ascending by key. An unknown mode groups by year.
func BuildTimeline(view RecordView, mode string) []Group {
	if view.Len() == 0 {
		return nil
	}
	keyOf := func(r *Record) int { return r.Year }
	if mode == TimelineSession {
		keyOf = func(r *Record) int { return r.Session }
	}
	groups := groupByKey(view, keyOf)
	SortGroups(groups)
	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

func groupByKey(view RecordView, keyOf func(*Record) int) []Group {
	grouped := make(map[int][]int)
	order := make([]int, 0)

	for i := 0; i < view.Len(); i++ {
		key := keyOf(view.At(i))
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: strconv.Itoa(key),
			Count: len(grouped[key]),
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// SortGroups orders groups ascending by key.
func SortGroups(groups []Group) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

// ============================================================================
// BREAKDOWN
// ============================================================================

// BuildBreakdown counts a category field over a view and converts the counts
// to percentages of all assignments. Rows are sorted by count descending;
// ties keep vocabulary order.
func BuildBreakdown(view RecordView, field Field, vocab schema.Vocabulary, selected string) Breakdown {
	counts := CountCategories(view, field, vocab)
	total := counts.Total()

	rows := make([]BreakdownRow, 0, len(counts))
	for _, c := range counts {
		pct := 0.0
		if total > 0 {
			pct = float64(c.Count) / float64(total) * 100
		}
		rows = append(rows, BreakdownRow{
			Label:       c.Label,
			ChartLabel:  Truncate(c.Label, ChartLabelWidth),
			TableLabel:  Truncate(c.Label, TableLabelWidth),
			Count:       c.Count,
			CountText:   FormatInt(c.Count),
			Percent:     pct,
			PercentText: FormatPercent(pct),
			Selected:    selected != "" && c.Label == selected,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	return Breakdown{
		Vocabulary: vocab.Name(),
		Rows:       rows,
		Total:      total,
		HasData:    total > 0,
		Selected:   selected,
	}
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// FormatPercent formats a percentage with one decimal place.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Truncate shortens s to at most width runes, ending in "..." when cut.
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}

// Ordinal returns n with its English ordinal suffix: 1st, 2nd, 3rd, 11th, 112th.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
