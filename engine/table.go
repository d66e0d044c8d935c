package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"

	"github.com/spektr-org/privlaw/errs"
)

// Table is the immutable base table produced once at startup.
// It is safe for concurrent readers; nothing mutates it after NewTable.
type Table struct {
	records     []Record
	byID        map[int]int
	minYear     int
	maxYear     int
	hasReliefs  bool
	fingerprint string
	report      LoadReport
}

// NewTable takes ownership of records and indexes them.
// Duplicate ids fail with a malformed-record error.
func NewTable(records []Record, report LoadReport) (*Table, error) {
	t := &Table{
		records: records,
		byID:    make(map[int]int, len(records)),
		report:  report,
	}
	first := true
	for i := range records {
		r := &records[i]
		if prev, dup := t.byID[r.ID]; dup {
			return nil, errs.Wrap(
				fmt.Errorf("duplicate id %d at rows %d and %d", r.ID, prev+1, i+1),
				errs.CategoryMalformedRecord, "duplicate_id", "ids must be unique",
			)
		}
		t.byID[r.ID] = i
		if r.Reliefs != "" {
			t.hasReliefs = true
		}
		if r.Year == SentinelYear {
			continue
		}
		if first || r.Year < t.minYear {
			t.minYear = r.Year
		}
		if first || r.Year > t.maxYear {
			t.maxYear = r.Year
		}
		first = false
	}
	t.report.Rows = len(records)
	t.fingerprint = fingerprint(records)
	return t, nil
}

func (t *Table) Len() int { return len(t.records) }

func (t *Table) At(i int) *Record {
	if i < 0 || i >= len(t.records) {
		return nil
	}
	return &t.records[i]
}

// Lookup returns the record with the given id.
func (t *Table) Lookup(id int) (*Record, bool) {
	i, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return &t.records[i], true
}

// YearBounds returns the smallest and largest non-sentinel year.
func (t *Table) YearBounds() (int, int) { return t.minYear, t.maxYear }

// HasReliefData reports whether any record carries relief labels.
func (t *Table) HasReliefData() bool { return t.hasReliefs }

// Fingerprint is a content digest identifying this table's data.
func (t *Table) Fingerprint() string { return t.fingerprint }

// Report returns the load report.
func (t *Table) Report() LoadReport { return t.report }

func fingerprint(records []Record) string {
	h := sha256.New()
	for i := range records {
		r := &records[i]
		writeField(h, strconv.Itoa(r.ID))
		writeField(h, strconv.Itoa(r.Session))
		writeField(h, strconv.Itoa(r.Volume))
		writeField(h, strconv.Itoa(r.Chapter))
		writeField(h, r.Title)
		writeField(h, r.DateString())
		writeField(h, strconv.Itoa(r.Year))
		writeField(h, r.Subjects)
		writeField(h, r.Reliefs)
		writeField(h, r.Summary)
		writeField(h, r.PDFLink)
		writeField(h, r.DetailsLink)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// writeField length-prefixes values so adjacent fields cannot alias.
func writeField(w io.Writer, s string) {
	fmt.Fprintf(w, "%d:%s;", len(s), s)
}
