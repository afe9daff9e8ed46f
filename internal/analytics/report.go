package analytics

import (
	"fmt"
	"strings"
	"time"
)

const (
	summaryWidth = 70
	reportWidth  = 60
)

// DefaultTopKeywords is the number of ranked keywords shown in the role
// summary when the caller does not override it.
const DefaultTopKeywords = 20

// Summary renders the profile as a fixed-layout plain-text report
// suitable for pasting into a role description. The layout is
// deterministic for identical inputs.
func (p *RoleProfile) Summary(topN int) string {
	if topN <= 0 {
		topN = DefaultTopKeywords
	}

	var b strings.Builder
	heavy := strings.Repeat("=", summaryWidth)
	light := strings.Repeat("-", summaryWidth)

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(heavy)
	line("PERSONAL ROLE PROFILE SUMMARY")
	line(heavy)
	line("")

	line("OVERVIEW")
	line(light)
	line("Analysis Period: %s to %s", p.Range.Start.Format("2006-01-02"), p.Range.End.Format("2006-01-02"))
	line("Total Hours Logged: %.1f hours", p.TotalHours)
	line("Total Tasks: %d", p.TaskCount)
	line("Tasks with Descriptions: %d (%.0f%%)", p.TasksWithComments,
		float64(p.TasksWithComments)/float64(p.TaskCount)*100)
	line("Unique Topics/Keywords: %d", p.DistinctKeywords)
	line("")

	line("TIME DISTRIBUTION BY CATEGORY")
	line(light)
	line("%-30s %-10s %-10s %s", "Category", "Hours", "% Time", "Tasks")
	line(light)
	for _, cat := range p.Categories {
		line("%-30s %-10.1f %-10.1f %d", cat.Name, cat.Hours, cat.Percentage, cat.Tasks)
	}
	line("")

	line("TIME DISTRIBUTION BY ACTIVITY TYPE")
	line(light)
	line("%-30s %-10s %-10s %s", "Activity Type", "Hours", "% Time", "Tasks")
	line(light)
	for _, act := range p.ActivityTypes {
		line("%-30s %-10.1f %-10.1f %d", act.Name, act.Hours, act.Percentage, act.Tasks)
	}
	line("")

	line("TOP %d TOPICS/PROJECTS (by time spent)", topN)
	line(light)
	line("%-35s %-10s %-10s %s", "Keyword", "Hours", "% Time", "Occurrences")
	line(light)
	for i, kw := range p.Keywords {
		if i >= topN {
			break
		}
		line("%-35s %-10.1f %-10.1f %d", kw.Keyword, kw.Hours, kw.Percentage, kw.Count)
	}
	line("")

	line("SUGGESTED ROLE DESCRIPTION BULLETS")
	line(light)
	for _, bullet := range p.bullets() {
		line("%s", bullet)
	}
	line("")

	line("ACTIVITY OVER TIME")
	line(light)
	line("%-15s %-10s %s", "Month", "Hours", "Tasks")
	line(light)
	for _, m := range p.Monthly {
		line("%-15s %-10.1f %d", m.Month, m.Hours, m.Tasks)
	}

	line("")
	line(heavy)
	return b.String()
}

// bullets derives the suggested role-description lines. The inclusion
// thresholds (2 categories for the area and allocation lines, 5 and 10
// sufficiently heavy keywords for the technical-area lines) are fixed
// policy.
func (p *RoleProfile) bullets() []string {
	var bullets []string

	if len(p.Categories) >= 2 {
		names := make([]string, 0, 3)
		for i, cat := range p.Categories {
			if i >= 3 {
				break
			}
			names = append(names, cat.Name)
		}
		bullets = append(bullets, "• Primary work areas: "+strings.Join(names, ", "))

		shares := make([]string, 0, 3)
		for i, cat := range p.Categories {
			if i >= 3 {
				break
			}
			shares = append(shares, fmt.Sprintf("%s (%.0f%%)", cat.Name, cat.Percentage))
		}
		bullets = append(bullets, "• Time allocation: "+strings.Join(shares, ", "))
	}

	var heavy []string
	for i, kw := range p.Keywords {
		if i >= 10 {
			break
		}
		if kw.Hours > 1 {
			heavy = append(heavy, kw.Keyword)
		}
	}
	if len(heavy) >= 5 {
		bullets = append(bullets, "• Key technical areas: "+strings.Join(heavy[:5], ", "))
	}
	if len(heavy) >= 10 {
		bullets = append(bullets, "• Additional experience: "+strings.Join(heavy[5:10], ", "))
	}

	if p.TotalHours > 0 {
		avg := p.TotalHours / float64(p.TaskCount)
		bullets = append(bullets, fmt.Sprintf("• Completed %d tasks over %.0f hours (avg %.1fh per task)",
			p.TaskCount, p.TotalHours, avg))
	}
	bullets = append(bullets, fmt.Sprintf("• Worked across %d different topics/systems/projects", p.DistinctKeywords))

	return bullets
}

// EnablementReport renders the team/person/monthly enablement rollups
// as a fixed-layout plain-text report over the given window.
func (a *Analyzer) EnablementReport(start, end time.Time) string {
	var b strings.Builder
	heavy := strings.Repeat("=", reportWidth)
	light := strings.Repeat("-", reportWidth)

	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line(heavy)
	line("ENABLEMENT HOURS REPORT")
	line(heavy)
	line("")

	if !start.IsZero() || !end.IsZero() {
		line("Date Range: %s to %s", rangeLabel(start, "Beginning"), rangeLabel(end, "End"))
		line("")
	}

	line("HOURS BY TEAM")
	line(light)
	line("%-25s %12s %10s", "Team", "Total Hours", "Sessions")
	for _, row := range a.HoursByTeam(start, end) {
		line("%-25s %12.1f %10d", row.Team, row.TotalHours, row.Sessions)
	}
	line("")

	line("HOURS BY PERSON")
	line(light)
	line("%-20s %-15s %12s %10s", "Person", "Team", "Total Hours", "Sessions")
	for _, row := range a.HoursByPerson(start, end) {
		line("%-20s %-15s %12.1f %10d", row.Person, row.Team, row.TotalHours, row.Sessions)
	}
	line("")

	line("MONTHLY BREAKDOWN")
	line(light)
	line("%-25s %-10s %12s", "Team", "Month", "Total Hours")
	for _, row := range a.MonthlyHoursByTeam() {
		line("%-25s %-10s %12.1f", row.Team, row.Period, row.TotalHours)
	}

	return b.String()
}

func rangeLabel(t time.Time, open string) string {
	if t.IsZero() {
		return open
	}
	return t.Format("2006-01-02")
}
