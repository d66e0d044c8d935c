package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/spektr-org/privlaw/engine"
)

var (
	summaryFlags  stateFlags
	summaryFormat string
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print counts, the timeline and category breakdowns for a selection",
	RunE: func(cmd *cobra.Command, args []string) error {
		tbl, err := loadTable()
		if err != nil {
			return err
		}
		vm := engine.Render(tbl, summaryFlags.state(), engineOptions()...)

		switch summaryFormat {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(vm)
		case "text":
			writeSummary(cmd.OutOrStdout(), tbl, vm)
			return nil
		default:
			return fmt.Errorf("unknown format %q (valid: text, json)", summaryFormat)
		}
	},
}

func init() {
	summaryFlags.register(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryFormat, "format", "f", "text", "Output format: text, json")
}

func writeSummary(w io.Writer, tbl *engine.Table, vm *engine.ViewModel) {
	rep := tbl.Report()
	fmt.Fprintf(w, "Source: %s (%s records)\n", rep.Source, engine.FormatInt(rep.Rows))
	if rep.SentinelYearRows > 0 {
		fmt.Fprintf(w, "Undated rows: %s\n", engine.FormatInt(rep.SentinelYearRows))
	}
	fmt.Fprintf(w, "\n%s\n", vm.Header)
	fmt.Fprintf(w, "Private Laws: %s", engine.FormatInt(vm.Total))
	if vm.Matches != vm.Total {
		fmt.Fprintf(w, " (%s matching search)", engine.FormatInt(vm.Matches))
	}
	fmt.Fprintln(w)

	unit := "Year"
	if vm.Timeline.Mode == engine.TimelineSession {
		unit = "Congress"
	}
	fmt.Fprintf(w, "\nTimeline by %s\n", unit)
	groups := vm.Timeline.Groups
	if vm.Timeline.Selection != nil {
		groups = vm.Timeline.Selection
	}
	for _, g := range groups {
		fmt.Fprintf(w, "  %-8s %s\n", g.Label, engine.FormatInt(g.Count))
	}

	writeBreakdown(w, "Subject Matter", vm.Subjects)
	writeBreakdown(w, "Relief Type", vm.Reliefs)
}

func writeBreakdown(w io.Writer, title string, b engine.Breakdown) {
	if !b.HasData {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, row := range b.Rows {
		if row.Count == 0 {
			continue
		}
		marker := " "
		if row.Selected {
			marker = "*"
		}
		fmt.Fprintf(w, " %s %-22s %8s %7s\n", marker, row.TableLabel, row.CountText, row.PercentText)
	}
}
