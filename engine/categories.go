package engine

import (
	"strings"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// CATEGORY COUNTING — Greedy longest-match elimination
// ============================================================================
// Raw label fields concatenate vocabulary labels that may themselves contain
// commas, so they cannot be split. Labels are matched longest first and each
// match removes its first occurrence, so a short label never double counts
// text already claimed by a longer one.
// ============================================================================

// Counts is the per-label result of CountCategories, in vocabulary order.
type Counts []CategoryCount

// Map returns the counts keyed by label.
func (c Counts) Map() map[string]int {
	m := make(map[string]int, len(c))
	for _, cc := range c {
		m[cc.Label] = cc.Count
	}
	return m
}

// Total returns the sum of all label assignments.
func (c Counts) Total() int {
	total := 0
	for _, cc := range c {
		total += cc.Count
	}
	return total
}

// CountCategories counts label assignments for one field across a view.
// Every vocabulary label is present in the result, including zero counts.
func CountCategories(view RecordView, field Field, vocab schema.Vocabulary) Counts {
	counts := make(Counts, vocab.Len())
	for i := range counts {
		counts[i].Label = vocab.Label(i)
	}
	order := vocab.LongestFirst()

	for i := 0; i < view.Len(); i++ {
		raw := strings.TrimSpace(view.At(i).Labels(field))
		if raw == "" {
			continue
		}
		working := raw
		for _, idx := range order {
			label := counts[idx].Label
			if strings.Contains(working, label) {
				counts[idx].Count++
				working = strings.Replace(working, label, "", 1)
			}
		}
	}
	return counts
}
