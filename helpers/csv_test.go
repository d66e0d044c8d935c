package helpers

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spektr-org/privlaw/engine"
	"github.com/spektr-org/privlaw/errs"
	"github.com/spektr-org/privlaw/schema"
)

const basicCSV = `congress,volume,chapter,title,date,subject_category,relief_category,extra
1,6,1,"An Act for the Relief of John Smith",1789-09-29,Health,Real Property,x
31,9,12,"An Act for the Relief of Mary Jones, Widow",1850-03-03,"Health, Defense",,y
`

func TestLoad_Basic(t *testing.T) {
	tbl, err := Load(strings.NewReader(basicCSV))
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	r := tbl.At(1)
	assert.Equal(t, 2, r.ID)
	assert.Equal(t, 31, r.Session)
	assert.Equal(t, 1850, r.Year)
	assert.Equal(t, "An Act for the Relief of Mary Jones, Widow", r.Title)
	assert.Equal(t, "Health, Defense", r.Subjects)
	assert.Empty(t, r.Reliefs)
	assert.Empty(t, r.Summary)
	assert.Empty(t, r.PDFLink)
	assert.Equal(t, "1850-03-03", r.DateString())

	rep := tbl.Report()
	assert.True(t, rep.IDsAssigned)
	assert.Equal(t, DateStrategyFormat, rep.DateStrategy)
	assert.Equal(t, "YYYY-MM-DD", rep.DateFormat)
	assert.Equal(t, "date", rep.YearSource)
	assert.Equal(t, "column", rep.SessionSource)
	require.Len(t, rep.SkippedColumns, 1)
	assert.Equal(t, "extra", rep.SkippedColumns[0].Column)
}

func TestLoad_DateFormats(t *testing.T) {
	tests := []struct {
		name, dates, pattern string
		wantYear             int
		wantMonth            int
	}{
		{"month first dashes", "03-04-1850\n12-31-1851", "MM-DD-YYYY", 1850, 3},
		{"month first slashes", "3/4/1850\n12/31/1851", "MM/DD/YYYY", 1850, 3},
		{"year first slashes", "1850/03/04\n1851/12/31", "YYYY/MM/DD", 1850, 3},
		{"day first dashes", "13-04-1850\n31-12-1851", "DD-MM-YYYY", 1850, 4},
		{"day first slashes", "13/04/1850\n31/12/1851", "DD/MM/YYYY", 1850, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b strings.Builder
			b.WriteString("title,date\n")
			for _, d := range strings.Split(tt.dates, "\n") {
				b.WriteString("A," + d + "\n")
			}
			tbl, err := Load(strings.NewReader(b.String()))
			require.NoError(t, err)

			assert.Equal(t, tt.pattern, tbl.Report().DateFormat)
			r := tbl.At(0)
			assert.Equal(t, tt.wantYear, r.Year)
			assert.Equal(t, tt.wantMonth, int(r.Date.Month()))
		})
	}
}

func TestLoad_GenericDateFallback(t *testing.T) {
	in := "title,date\nA,1850-03-04\nB,\"March 5, 1851\"\nC,not a date\n"

	core, logs := observer.New(zap.WarnLevel)
	tbl, err := Load(strings.NewReader(in), WithLogger(zap.New(core)))
	require.NoError(t, err)

	rep := tbl.Report()
	assert.Equal(t, DateStrategyGeneric, rep.DateStrategy)
	assert.Equal(t, 1, rep.SentinelYearRows)

	assert.Equal(t, 1850, tbl.At(0).Year)
	assert.Equal(t, 1851, tbl.At(1).Year)

	undated := tbl.At(2)
	assert.Equal(t, engine.SentinelYear, undated.Year)
	assert.False(t, undated.DateValid)
	assert.Equal(t, "not a date", undated.DateString())
	assert.Equal(t, 0, undated.Session)

	assert.Equal(t, 1, logs.FilterMessage("rows without a usable year").Len())
}

func TestLoad_YearColumn(t *testing.T) {
	in := "id,title,year,date\n10,A,1850.0,1850-01-01\n20,B,1851,\n"
	tbl, err := Load(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 1850, tbl.At(0).Year)
	assert.Equal(t, 1851, tbl.At(1).Year)
	assert.Equal(t, 0, tbl.Report().SentinelYearRows)
	assert.False(t, tbl.Report().IDsAssigned)

	r, ok := tbl.Lookup(20)
	require.True(t, ok)
	assert.Equal(t, "B", r.Title)
	assert.Equal(t, 32, r.Session)
}

func TestLoad_BadYearFailsWholeLoad(t *testing.T) {
	in := "title,year\nA,1850\nB,eighteen fifty\n"
	_, err := Load(strings.NewReader(in))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoad_DuplicateIDs(t *testing.T) {
	in := "id,title\n1,A\n1,B\n"
	_, err := Load(strings.NewReader(in))
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestLoad_NonPositiveIDs(t *testing.T) {
	for _, in := range []string{"id,title\n1,A\n0,B\n", "id,title\n-3,A\n"} {
		_, err := Load(strings.NewReader(in))
		require.Error(t, err, in)
		assert.ErrorIs(t, err, errs.ErrMalformedRecord, in)
		assert.Equal(t, "bad_id", errs.CodeOf(err), in)
	}
}

type failingReader struct {
	data string
	read bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.read {
		r.read = true
		return copy(p, r.data), nil
	}
	return 0, errors.New("disk went away")
}

func TestLoad_ReadFailure(t *testing.T) {
	_, err := Load(&failingReader{data: "title,year\nA,1900\n"})
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	assert.Equal(t, "read_failed", errs.CodeOf(err))
}

func TestLoad_CSVSyntaxError(t *testing.T) {
	_, err := Load(strings.NewReader("title,year\n\"unterminated,1900\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
	assert.Equal(t, "bad_csv", errs.CodeOf(err))
}

func TestLoad_WithSchema(t *testing.T) {
	sch := schema.Default()
	for i := range sch.Columns {
		if sch.Columns[i].Key == schema.ColumnTitle {
			sch.Columns[i].Aliases = append(sch.Columns[i].Aliases, "law_title")
		}
	}
	in := "law_title,year\nA,1900\n"

	_, err := Load(strings.NewReader(in))
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)

	tbl, err := Load(strings.NewReader(in), WithSchema(sch))
	require.NoError(t, err)
	assert.Equal(t, "A", tbl.At(0).Title)
}

func TestLoad_MissingTitleColumn(t *testing.T) {
	_, err := Load(strings.NewReader("congress,date\n1,1789-01-01\n"))
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestLoad_EmptyInput(t *testing.T) {
	_, err := Load(strings.NewReader(""))
	assert.ErrorIs(t, err, errs.ErrMalformedRecord)
}

func TestLoad_LenientIntegers(t *testing.T) {
	in := "title,volume,chapter,year\nA,12.0,ch. 4,1900\nB,,7,1901\n"
	tbl, err := Load(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 12, tbl.At(0).Volume)
	assert.Equal(t, 0, tbl.At(0).Chapter)
	assert.Equal(t, 0, tbl.At(1).Volume)
	assert.Equal(t, 1, tbl.Report().CoercedIntegers)
	assert.Equal(t, 56, tbl.At(0).Session)
}

func TestLoad_HeaderAliases(t *testing.T) {
	in := "\ufeffSession Number,Title,Enactment Date,Subject Labels,Relief Labels\n5,A,1797-02-01,Health,Real Property\n"
	tbl, err := Load(strings.NewReader(in))
	require.NoError(t, err)

	r := tbl.At(0)
	assert.Equal(t, 5, r.Session)
	assert.Equal(t, 1797, r.Year)
	assert.Equal(t, "Health", r.Subjects)
	assert.Equal(t, "Real Property", r.Reliefs)
}

func TestLoad_NormalizesLabels(t *testing.T) {
	in := "title,year,subject_category\nA,1900,Cafe\u0301\n"
	tbl, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, "Caf\u00e9", tbl.At(0).Subjects)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrDataUnavailable)
	assert.NotEmpty(t, errs.HintOf(err))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "laws.csv")
	require.NoError(t, os.WriteFile(path, []byte(basicCSV), 0o600))

	tbl, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, tbl.Report().Source)
}

func TestExportRoundTrip(t *testing.T) {
	src, err := Load(strings.NewReader(basicCSV))
	require.NoError(t, err)

	state := engine.DefaultViewState().ToggleSubject("Health").SetRange(1800, 1900)
	view := engine.Matching(src, state)
	require.Equal(t, 1, view.Len())

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, view))

	back, err := Load(&buf)
	require.NoError(t, err)
	require.Equal(t, view.Len(), back.Len())
	for i := 0; i < view.Len(); i++ {
		want, got := view.At(i), back.At(i)
		assert.Equal(t, want.Title, got.Title)
		assert.Equal(t, want.Year, got.Year)
		assert.Equal(t, want.Subjects, got.Subjects)
		assert.Equal(t, want.Reliefs, got.Reliefs)
	}
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, engine.NewSliceView(nil)))

	assert.Equal(t,
		"congress,volume,chapter,title,date,year,subject_category,relief_category,summary,pdf_link,details_link\n",
		buf.String())

	tbl, err := Load(&buf)
	require.NoError(t, err)
	assert.Zero(t, tbl.Len())
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "private_laws_1789_2025.csv", ExportFilename(1789, 2025))
}

func TestSessionForYear(t *testing.T) {
	assert.Equal(t, 1, SessionForYear(1789))
	assert.Equal(t, 1, SessionForYear(1790))
	assert.Equal(t, 2, SessionForYear(1791))
	assert.Equal(t, 118, SessionForYear(2023))
	assert.Equal(t, 0, SessionForYear(engine.SentinelYear))
}
