package schema

import (
	"strings"
	"time"
)

// ============================================================================
// DATE FORMATS — Column-level format detection
// ============================================================================
// Formats are tried in order against every non-empty value of the column.
// The first format that parses all of them wins for the whole column.
// Layouts accept one- or two-digit months and days.
// ============================================================================

// DateFormat pairs a display pattern with its Go layout.
type DateFormat struct {
	Pattern string
	Layout  string
}

// DateFormats is the ordered list of column-wide candidate formats.
var DateFormats = []DateFormat{
	{Pattern: "YYYY-MM-DD", Layout: "2006-1-2"},
	{Pattern: "MM-DD-YYYY", Layout: "1-2-2006"},
	{Pattern: "MM/DD/YYYY", Layout: "1/2/2006"},
	{Pattern: "YYYY/MM/DD", Layout: "2006/1/2"},
	{Pattern: "DD-MM-YYYY", Layout: "2-1-2006"},
	{Pattern: "DD/MM/YYYY", Layout: "2/1/2006"},
}

// DetectDateFormat returns the first format that parses every non-empty value.
// A column with no non-empty values matches the first format.
func DetectDateFormat(values []string) (DateFormat, bool) {
	for _, f := range DateFormats {
		if parsesAll(f.Layout, values) {
			return f, true
		}
	}
	return DateFormat{}, false
}

func parsesAll(layout string, values []string) bool {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, err := time.Parse(layout, v); err != nil {
			return false
		}
	}
	return true
}
