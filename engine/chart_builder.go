package engine

import "fmt"

// ============================================================================
// CHART BUILDER — Produces ChartConfig from Timeline + Breakdown
// ============================================================================

// Palette used by the dashboard charts.
const (
	ColorBarDefault   = "#58a6ff"
	ColorBarMuted     = "#30363d"
	ColorFilterOrange = "#d4a84b"
	ColorHighlightRow = "#1f6feb"
)

// BuildTimelineChart produces a bar chart of the timeline population.
// When a category filter is active the bars switch to the filter color and
// the selection is drawn as a second series.
func BuildTimelineChart(tl Timeline) *ChartConfig {
	if len(tl.Groups) == 0 {
		return nil
	}

	xAxis, hoverUnit := "Year", "Year"
	if tl.Mode == TimelineSession {
		xAxis, hoverUnit = "Congress", "Congress"
	}

	color := ColorBarDefault
	if tl.Highlight {
		color = ColorFilterOrange
	}

	config := &ChartConfig{
		ChartType:  "bar",
		Title:      "Private Laws over Time",
		XAxis:      xAxis,
		YAxis:      "Private Laws",
		ShowLegend: len(tl.Selection) > 0,
		ShowGrid:   true,
	}

	population := buildGroupSeries("All", tl.Groups, hoverUnit)
	if len(tl.Selection) > 0 {
		population.Color = ColorBarMuted
		selection := buildGroupSeries("Selection", tl.Selection, hoverUnit)
		selection.Color = color
		config.Series = []ChartSeries{population, selection}
		return config
	}
	population.Color = color
	config.Series = []ChartSeries{population}
	return config
}

// BuildBreakdownChart produces a horizontal bar chart of percentages.
// Points are emitted bottom-up so the largest category renders on top.
func BuildBreakdownChart(b Breakdown, title string) *ChartConfig {
	if !b.HasData {
		return nil
	}

	n := len(b.Rows)
	points := make([]ChartPoint, 0, n)
	colors := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		row := b.Rows[i]
		points = append(points, ChartPoint{
			Label: row.ChartLabel,
			Value: RoundTo2(row.Percent),
			Text:  row.PercentText,
			Hover: fmt.Sprintf("%s<br>%s", row.Label, row.PercentText),
		})
		colors = append(colors, breakdownColor(b.Selected, row.Selected))
	}

	return &ChartConfig{
		ChartType:   "bar",
		Orientation: "h",
		Title:       title,
		XAxis:       "% of assignments",
		Series: []ChartSeries{{
			Name:   title,
			Data:   points,
			Colors: colors,
		}},
		ShowGrid: true,
	}
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildGroupSeries(name string, groups []Group, unit string) ChartSeries {
	points := make([]ChartPoint, 0, len(groups))
	for _, g := range groups {
		points = append(points, ChartPoint{
			Label: g.Label,
			Value: float64(g.Count),
			Hover: fmt.Sprintf("%s: %s<br>Laws: %s", unit, g.Label, FormatInt(g.Count)),
		})
	}
	return ChartSeries{Name: name, Data: points}
}

func breakdownColor(selected string, isSelected bool) string {
	switch {
	case selected == "":
		return ColorBarDefault
	case isSelected:
		return ColorFilterOrange
	default:
		return ColorBarMuted
	}
}
