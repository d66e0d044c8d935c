package schema

import (
	"fmt"
	"strings"
	"unicode"
)

// ============================================================================
// COLUMN RESOLUTION — Maps raw CSV headers onto canonical column keys
// ============================================================================
// Headers are normalized to snake_case, then matched against each column's
// key and aliases. Unmapped and duplicate headers are reported as skipped.
// ============================================================================

// ColumnIndex maps canonical column keys to CSV field positions.
type ColumnIndex map[string]int

// Has reports whether the input provided the column.
func (ci ColumnIndex) Has(key string) bool {
	_, ok := ci[key]
	return ok
}

// Value returns the field for key in row, or "" when absent.
func (ci ColumnIndex) Value(row []string, key string) string {
	i, ok := ci[key]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ResolveColumns maps headers to canonical keys.
// It fails only when a required column is missing.
func (c Config) ResolveColumns(headers []string) (ColumnIndex, []SkippedColumn, error) {
	lookup := make(map[string]string)
	for _, col := range c.Columns {
		lookup[col.Key] = col.Key
		for _, alias := range col.Aliases {
			lookup[alias] = col.Key
		}
	}

	index := make(ColumnIndex)
	var skipped []SkippedColumn
	for i, h := range headers {
		name := ToSnakeCase(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		key, ok := lookup[name]
		if !ok {
			skipped = append(skipped, SkippedColumn{Column: h, Reason: "unknown column"})
			continue
		}
		if _, dup := index[key]; dup {
			skipped = append(skipped, SkippedColumn{Column: h, Reason: "duplicate of " + key})
			continue
		}
		index[key] = i
	}

	for _, col := range c.Columns {
		if col.Required && !index.Has(col.Key) {
			return nil, skipped, fmt.Errorf("missing required column %q", col.Key)
		}
	}
	return index, skipped, nil
}

// ToSnakeCase converts "Column Name" or "columnName" to "column_name".
func ToSnakeCase(s string) string {
	var result strings.Builder
	runes := []rune(s)
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}
