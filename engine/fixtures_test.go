package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

const (
	civilRights = "Civil Rights, Minority Issues, and Civil Liberties"
	lawCrime    = "Law, Crime, and Family Issues"
	realProp    = "Real Property"
	immStatus   = "Adjusting Immigration Status"
)

func rec(id, year int, title, subjects, reliefs string) Record {
	return Record{
		ID:        id,
		Session:   (year-1789)/2 + 1,
		Volume:    id,
		Chapter:   id * 10,
		Title:     title,
		Date:      time.Date(year, time.March, 3, 0, 0, 0, 0, time.UTC),
		DateValid: true,
		Year:      year,
		Subjects:  subjects,
		Reliefs:   reliefs,
	}
}

func testRecords() []Record {
	return []Record{
		rec(1, 1789, "An Act for the Relief of John Smith", "Health", realProp),
		rec(2, 1790, "An Act for the Relief of Mary Jones", "Defense", ""),
		rec(3, 1850, "An Act for the Relief of James Brown", "Health, Defense", immStatus),
		rec(4, 1850, "An Act for the Relief of Sarah Davis", civilRights, ""),
		rec(5, 1920, "An Act for the Relief of William Miller", lawCrime+", Health", realProp+", "+immStatus),
		rec(6, 1965, "An Act for the Relief of Elizabeth Garcia", "Immigration", immStatus),
		rec(7, 2001, "An Act to Correct the Name of a Vessel", "", ""),
	}
}

func testTable(t *testing.T) *Table {
	t.Helper()
	tbl, err := NewTable(testRecords(), LoadReport{Source: "fixture"})
	require.NoError(t, err)
	return tbl
}

func ids(view RecordView) []int {
	out := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		out = append(out, view.At(i).ID)
	}
	return out
}

func fullRange() Filters {
	return Filters{YearStart: RangeMin, YearEnd: RangeMax}
}
