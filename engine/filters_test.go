package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFilters(t *testing.T) {
	tbl := testTable(t)

	tests := []struct {
		name    string
		filters Filters
		want    []int
	}{
		{"no-op keeps everything in order", fullRange(), []int{1, 2, 3, 4, 5, 6, 7}},
		{"single year", Filters{YearStart: 1789, YearEnd: 1789}, []int{1}},
		{"inclusive bounds", Filters{YearStart: 1850, YearEnd: 1920}, []int{3, 4, 5}},
		{"inverted range", Filters{YearStart: 1900, YearEnd: 1800}, []int{}},
		{"subject", Filters{YearStart: RangeMin, YearEnd: RangeMax, Subject: "Health"}, []int{1, 3, 5}},
		{"subject and relief", Filters{YearStart: RangeMin, YearEnd: RangeMax, Subject: "Health", Relief: immStatus}, []int{3, 5}},
		{"subject and year", Filters{YearStart: 1800, YearEnd: 1900, Subject: "Defense"}, []int{3}},
		{"unknown subject", Filters{YearStart: RangeMin, YearEnd: RangeMax, Subject: "Astrology"}, []int{}},
		{"unknown relief", Filters{YearStart: RangeMin, YearEnd: RangeMax, Relief: "Health"}, []int{}},
		{"search title case-insensitive", Filters{YearStart: RangeMin, YearEnd: RangeMax, Query: "MARY"}, []int{2}},
		{"search date", Filters{YearStart: RangeMin, YearEnd: RangeMax, Query: "1850-03"}, []int{3, 4}},
		{"search subject", Filters{YearStart: RangeMin, YearEnd: RangeMax, Query: "immigration"}, []int{3, 5, 6}},
		{"search relief", Filters{YearStart: RangeMin, YearEnd: RangeMax, Query: "real property"}, []int{1, 5}},
		{"search with category", Filters{YearStart: RangeMin, YearEnd: RangeMax, Subject: "Health", Query: "brown"}, []int{3}},
		{"search no match", Filters{YearStart: RangeMin, YearEnd: RangeMax, Query: "zzz"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyFilters(tbl, tt.filters)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyFilters_SequentialSelectionReplaces(t *testing.T) {
	tbl := testTable(t)
	state := DefaultViewState().ToggleSubject("Health").ToggleSubject("Defense")

	got := ids(ApplyFilters(tbl, state.Filters()))
	assert.Equal(t, []int{2, 3}, got)
}

func TestApplyFilters_SentinelYearOutsideRanges(t *testing.T) {
	records := testRecords()
	records = append(records, Record{ID: 99, Year: SentinelYear, Title: "Undated", DateRaw: "sometime"})
	view := NewSliceView(records)

	assert.NotContains(t, ids(ApplyFilters(view, fullRange())), 99)
	assert.Equal(t, []int{99}, ids(ApplyFilters(view, Filters{YearStart: 0, YearEnd: 0})))
	assert.Equal(t, []int{99}, ids(ApplyFilters(view, Filters{YearStart: 0, YearEnd: 0, Query: "sometime"})))
}

func TestApplyFilters_ComposesOverSubViews(t *testing.T) {
	tbl := testTable(t)
	first := ApplyFilters(tbl, Filters{YearStart: 1850, YearEnd: 2025})
	second := ApplyFilters(first, Filters{YearStart: 1850, YearEnd: 2025, Subject: "Health"})

	assert.Equal(t, []int{3, 5}, ids(second))
}
