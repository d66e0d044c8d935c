package engine

// ============================================================================
// TABLE BUILDER — Produces one Page of matching records
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// ============================================================================

// SubjectCellWidth is the subject text kept in a table cell before "..." is appended.
const SubjectCellWidth = 30

// PageColumns is the fixed column set of the records table.
var PageColumns = []Column{
	{Key: "id", Label: "ID", Type: "number", Align: "center"},
	{Key: "congress", Label: "Congress", Type: "number", Align: "center"},
	{Key: "volume", Label: "Vol", Type: "number", Align: "center"},
	{Key: "chapter", Label: "Ch", Type: "number", Align: "center"},
	{Key: "title", Label: "Title", Type: "text", Align: "left"},
	{Key: "date", Label: "Date", Type: "text", Align: "center"},
	{Key: "subject", Label: "Subject", Type: "text", Align: "left"},
}

// BuildPage slices one page out of a view. The page index is clamped to the
// last non-empty page; an empty view yields page 0 of 0.
func BuildPage(view RecordView, page, pageSize, selectedID int) Page {
	if !validPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	total := view.Len()
	pageCount := (total + pageSize - 1) / pageSize

	if page < 0 {
		page = 0
	}
	if pageCount == 0 {
		page = 0
	} else if page >= pageCount {
		page = pageCount - 1
	}

	from := page * pageSize
	slice := Slice(view, from, from+pageSize)

	rows := make([]PageRow, 0, slice.Len())
	for i := 0; i < slice.Len(); i++ {
		r := slice.At(i)
		rows = append(rows, PageRow{
			ID:       r.ID,
			Session:  r.Session,
			Volume:   r.Volume,
			Chapter:  r.Chapter,
			Title:    r.Title,
			Date:     r.DateString(),
			Subject:  shortSubject(r.Subjects),
			Selected: selectedID != 0 && r.ID == selectedID,
		})
	}

	return Page{
		Columns:   PageColumns,
		Rows:      rows,
		Page:      page,
		PageSize:  pageSize,
		PageCount: pageCount,
		TotalRows: total,
	}
}

func shortSubject(s string) string {
	runes := []rune(s)
	if len(runes) <= SubjectCellWidth {
		return s
	}
	return string(runes[:SubjectCellWidth]) + "..."
}

func validPageSize(n int) bool {
	for _, size := range PageSizes {
		if n == size {
			return true
		}
	}
	return false
}
