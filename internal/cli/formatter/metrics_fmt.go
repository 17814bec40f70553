package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dagimg/prdesk/internal/domain"
)

// FormatMetrics renders the dashboard aggregates: totals by status plus the
// by-type and by-department breakdowns when the server includes them.
func FormatMetrics(m *domain.DashboardMetrics) string {
	var b strings.Builder

	b.WriteString("  " + Header(fmt.Sprintf("Dashboard — %s", m.Period)) + "\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim(PadRight("Total", 12)), Bold(fmt.Sprintf("%d", m.TotalRequests))))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim(PadRight("Pending", 12)), StyleYellow.Render(fmt.Sprintf("%d", m.Pending))))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim(PadRight("Approved", 12)), StyleGreen.Render(fmt.Sprintf("%d", m.Approved))))
	b.WriteString(fmt.Sprintf("  %s %s\n", Dim(PadRight("Rejected", 12)), StyleRed.Render(fmt.Sprintf("%d", m.Rejected))))

	if len(m.ByType) > 0 {
		b.WriteString("\n  " + Header("By Type") + "\n")
		b.WriteString(breakdown(m.ByType, m.TotalRequests))
	}
	if len(m.ByDepartment) > 0 {
		b.WriteString("\n  " + Header("By Department") + "\n")
		b.WriteString(breakdown(m.ByDepartment, m.TotalRequests))
	}

	return strings.TrimRight(b.String(), "\n")
}

// breakdown renders label/count pairs with a proportional bar, largest first.
func breakdown(counts map[string]int, total int) string {
	type entry struct {
		label string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, entry{label, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].label < entries[j].label
	})

	var b strings.Builder
	for _, e := range entries {
		bar := ""
		if total > 0 {
			width := e.count * 20 / total
			bar = StyleBlue.Render(strings.Repeat("█", width))
		}
		b.WriteString(fmt.Sprintf("  %s %3d %s\n", Dim(PadRight(e.label, 24)), e.count, bar))
	}
	return b.String()
}
