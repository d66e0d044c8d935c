package engine

// ============================================================================
// STATE TRANSITIONS — Interactive selection semantics
// ============================================================================
// Every transition returns a new ViewState. Any change to a filter resets the
// page to 0.
// ============================================================================

// ToggleSubject selects label, or clears the selection when label is already
// selected.
func (s ViewState) ToggleSubject(label string) ViewState {
	if s.Subject == label {
		label = ""
	}
	s.Subject = label
	return s.filterChanged()
}

// ToggleRelief selects label, or clears the selection when label is already
// selected.
func (s ViewState) ToggleRelief(label string) ViewState {
	if s.Relief == label {
		label = ""
	}
	s.Relief = label
	return s.filterChanged()
}

func (s ViewState) ResetSubject() ViewState {
	s.Subject = ""
	return s.filterChanged()
}

func (s ViewState) ResetRelief() ViewState {
	s.Relief = ""
	return s.filterChanged()
}

// SetRange replaces the year range.
func (s ViewState) SetRange(start, end int) ViewState {
	s.YearStart, s.YearEnd = start, end
	return s.filterChanged()
}

// SetQuery replaces the search text.
func (s ViewState) SetQuery(q string) ViewState {
	s.Query = q
	return s.filterChanged()
}

func (s ViewState) ResetQuery() ViewState {
	return s.SetQuery("")
}

// SetTimeline switches the timeline between year and session grouping.
func (s ViewState) SetTimeline(mode string) ViewState {
	s.Timeline = mode
	return NormalizeViewState(s)
}

// SetPage moves to page n; Render clamps it to the available pages.
func (s ViewState) SetPage(n int) ViewState {
	s.Page = n
	return NormalizeViewState(s)
}

// SetPageSize changes the page size and returns to the first page.
func (s ViewState) SetPageSize(n int) ViewState {
	s.PageSize = n
	s.Page = 0
	return NormalizeViewState(s)
}

// Select marks a record for the detail panel; 0 clears it.
func (s ViewState) Select(id int) ViewState {
	s.SelectedID = id
	return NormalizeViewState(s)
}

func (s ViewState) filterChanged() ViewState {
	s.Page = 0
	return NormalizeViewState(s)
}
