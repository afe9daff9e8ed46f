package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/effortscope/effortscope/internal/analytics"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

// TeamTable renders team rollup rows for terminal output.
func TeamTable(rows []analytics.TeamHours) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Enablement hours by team"))
	b.WriteByte('\n')
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (no matching records)"))
		b.WriteByte('\n')
		return b.String()
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-25s %12s %10s", "Team", "Hours", "Sessions")))
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-25s %12.1f %10d\n", row.Team, row.TotalHours, row.Sessions)
	}
	return b.String()
}

// PersonTable renders per-person rollup rows.
func PersonTable(rows []analytics.PersonHours) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Enablement hours by person"))
	b.WriteByte('\n')
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (no matching records)"))
		b.WriteByte('\n')
		return b.String()
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-20s %-15s %12s %10s", "Person", "Team", "Hours", "Sessions")))
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-20s %-15s %12.1f %10d\n", row.Person, row.Team, row.TotalHours, row.Sessions)
	}
	return b.String()
}

// PeriodTable renders monthly or weekly rollup rows under the given
// title.
func PeriodTable(title string, rows []analytics.PeriodHours) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteByte('\n')
	if len(rows) == 0 {
		b.WriteString(dimStyle.Render("  (no matching records)"))
		b.WriteByte('\n')
		return b.String()
	}
	b.WriteString(headerStyle.Render(fmt.Sprintf("  %-25s %-10s %12s", "Team", "Period", "Hours")))
	b.WriteByte('\n')
	for _, row := range rows {
		fmt.Fprintf(&b, "  %-25s %-10s %12.1f\n", row.Team, row.Period, row.TotalHours)
	}
	return b.String()
}
