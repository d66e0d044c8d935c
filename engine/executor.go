package engine

import (
	"go.uber.org/zap"

	"github.com/spektr-org/privlaw/schema"
)

// ============================================================================
// EXECUTOR — Table + ViewState → ViewModel
// ============================================================================
// Entry point: Render(table, state, opts...)
//
// Pipeline:
//   1. Normalize the view state
//   2. Year-range set → timeline population + breakdowns
//   3. Year + category set → header counter (+ timeline selection)
//   4. Year + category + search set → table page
//   5. Detail for the selected id
//
// Every output is re-derived from the immutable table; nothing is cached.
// ============================================================================

// Year range offered by the dashboard slider.
const (
	RangeMin = 1789
	RangeMax = 2025
)

// DefaultViewState is the state of a fresh dashboard.
func DefaultViewState() ViewState {
	return ViewState{
		YearStart: RangeMin,
		YearEnd:   RangeMax,
		Timeline:  TimelineYear,
		PageSize:  DefaultPageSize,
	}
}

// NormalizeViewState fixes fields that have a single sensible fallback.
// Year bounds are left as given; an inverted range simply matches nothing.
func NormalizeViewState(s ViewState) ViewState {
	if s.Timeline != TimelineYear && s.Timeline != TimelineSession {
		s.Timeline = TimelineYear
	}
	if !validPageSize(s.PageSize) {
		s.PageSize = DefaultPageSize
	}
	if s.Page < 0 {
		s.Page = 0
	}
	if s.SelectedID < 0 {
		s.SelectedID = 0
	}
	return s
}

// Render derives the full dashboard output for one view state.
func Render(t *Table, state ViewState, opts ...Option) *ViewModel {
	cfg := applyOptions(opts)
	state = NormalizeViewState(state)
	f := state.Filters()

	// 1. Year-range population
	yearView := ApplyFilters(t, f.YearOnly(), opts...)

	// 2. Category filters → header counter
	categoryView := yearView
	if f.CategoryActive() {
		categoryView = ApplyFilters(yearView, f.WithoutQuery(), opts...)
	}

	// 3. Search → table population
	matchView := categoryView
	if f.Query != "" {
		matchView = ApplyFilters(categoryView, f, opts...)
	}

	cfg.logger.Debug("render",
		zap.Int("year_range", yearView.Len()),
		zap.Int("total", categoryView.Len()),
		zap.Int("matches", matchView.Len()),
		zap.Int("year_start", state.YearStart),
		zap.Int("year_end", state.YearEnd),
		zap.String("subject", state.Subject),
		zap.String("relief", state.Relief),
	)

	timeline := Timeline{
		Mode:      state.Timeline,
		Groups:    BuildTimeline(yearView, state.Timeline),
		Highlight: f.CategoryActive(),
	}
	if f.CategoryActive() {
		timeline.Selection = BuildTimeline(categoryView, state.Timeline)
	}

	subjects := BuildBreakdown(yearView, FieldSubject, cfg.subjects, selectedLabel(cfg.subjects, state.Subject))
	reliefs := BuildBreakdown(yearView, FieldRelief, cfg.reliefs, selectedLabel(cfg.reliefs, state.Relief))

	page := BuildPage(matchView, state.Page, state.PageSize, state.SelectedID)
	state.Page = page.Page

	return &ViewModel{
		State:         state,
		Header:        BuildHeader(state.YearStart, state.YearEnd),
		Total:         categoryView.Len(),
		Matches:       matchView.Len(),
		FilterActive:  f.CategoryActive(),
		Timeline:      timeline,
		TimelineChart: BuildTimelineChart(timeline),
		Subjects:      subjects,
		SubjectChart:  BuildBreakdownChart(subjects, "Subject Matter"),
		Reliefs:       reliefs,
		ReliefChart:   BuildBreakdownChart(reliefs, "Relief Type"),
		Page:          page,
		Detail:        BuildDetail(t, state.SelectedID),
	}
}

// Matching returns the records selected by every filter of a view state,
// in table order. Export and the CLI use it.
func Matching(t *Table, state ViewState, opts ...Option) RecordView {
	return ApplyFilters(t, state.Filters(), opts...)
}

// selectedLabel maps a selected label to its vocabulary spelling so the
// breakdown can flag it; unknown labels are kept verbatim and flag nothing.
func selectedLabel(v schema.Vocabulary, selected string) string {
	if selected == "" {
		return ""
	}
	if i := v.IndexOf(selected); i >= 0 {
		return v.Label(i)
	}
	return selected
}
