package compliance

import (
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
)

var (
	statusOrder = []string{"compliant", "partially_compliant", "non_compliant"}
	riskOrder   = []string{"high", "medium", "low"}
)

// RenderTable prints a report as terminal tables.
func RenderTable(w io.Writer, title string, rep Report) {
	fmt.Fprintf(w, "%s\n", title)

	summary := table.NewWriter()
	summary.SetOutputMirror(w)
	summary.AppendHeader(table.Row{"Framework", "Compliant", "Total", "Compliance"})
	for _, fw := range rep.Frameworks {
		summary.AppendRow(table.Row{fw.Name, fw.Compliant, fw.Total, fmt.Sprintf("%.2f%%", fw.Percentage)})
	}
	summary.AppendFooter(table.Row{"Overall", "", "", fmt.Sprintf("%.2f%%", rep.OverallCompliance)})
	summary.SetStyle(table.StyleRounded)
	summary.Render()

	counts := table.NewWriter()
	counts.SetOutputMirror(w)
	counts.AppendHeader(table.Row{"Kind", "Value", "Count"})
	for _, k := range orderedKeys(rep.StatusCounts, statusOrder) {
		counts.AppendRow(table.Row{"status", k, rep.StatusCounts[k]})
	}
	for _, k := range orderedKeys(rep.RiskCounts, riskOrder) {
		counts.AppendRow(table.Row{"risk", k, rep.RiskCounts[k]})
	}
	counts.SetStyle(table.StyleRounded)
	counts.Render()

	if len(rep.DetailedResults) == 0 {
		fmt.Fprintln(w, "No results recorded.")
		return
	}
	details := table.NewWriter()
	details.SetOutputMirror(w)
	details.AppendHeader(table.Row{"Control", "Framework", "Title", "Status", "Risk", "Action required"})
	for _, d := range rep.DetailedResults {
		details.AppendRow(table.Row{d.ControlID, d.Framework, truncate(d.Title, 48), d.Status, d.RiskLevel, truncate(d.ActionRequired, 40)})
	}
	details.SetStyle(table.StyleRounded)
	details.Render()
}

// orderedKeys lists known keys first in their fixed order, then any other keys sorted.
func orderedKeys(m map[string]int, known []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(known))
	for _, k := range known {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var extra []string
	for k := range m {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}
