package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/privlaw/errs"
)

func TestNewTable(t *testing.T) {
	tbl := testTable(t)

	assert.Equal(t, 7, tbl.Len())
	assert.Equal(t, 7, tbl.Report().Rows)
	lo, hi := tbl.YearBounds()
	assert.Equal(t, 1789, lo)
	assert.Equal(t, 2001, hi)
	assert.True(t, tbl.HasReliefData())
	assert.Len(t, tbl.Fingerprint(), 64)

	r, ok := tbl.Lookup(4)
	require.True(t, ok)
	assert.Equal(t, "An Act for the Relief of Sarah Davis", r.Title)

	_, ok = tbl.Lookup(404)
	assert.False(t, ok)
}

func TestNewTable_DuplicateID(t *testing.T) {
	records := []Record{rec(1, 1800, "A", "", ""), rec(1, 1801, "B", "", "")}
	_, err := NewTable(records, LoadReport{})

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
	assert.Equal(t, "duplicate_id", errs.CodeOf(err))
}

func TestNewTable_SentinelYearExcludedFromBounds(t *testing.T) {
	records := []Record{{ID: 1, Year: SentinelYear}, rec(2, 1900, "A", "", "")}
	tbl, err := NewTable(records, LoadReport{})
	require.NoError(t, err)

	lo, hi := tbl.YearBounds()
	assert.Equal(t, 1900, lo)
	assert.Equal(t, 1900, hi)
}

func TestFingerprint_ChangesWithContent(t *testing.T) {
	a := testTable(t)

	records := testRecords()
	records[0].Title += "!"
	b, err := NewTable(records, LoadReport{})
	require.NoError(t, err)

	assert.NotEqual(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Fingerprint(), testTable(t).Fingerprint())
}

func TestSlice(t *testing.T) {
	view := NewSliceView(testRecords())

	assert.Equal(t, []int{2, 3}, ids(Slice(view, 1, 3)))
	assert.Equal(t, []int{6, 7}, ids(Slice(view, 5, 50)))
	assert.Equal(t, []int{}, ids(Slice(view, 9, 12)))
	assert.Nil(t, view.At(-1))
	assert.Equal(t, []int{1, 2}, ids(Slice(view, 0, 2)))
}
