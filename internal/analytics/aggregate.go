package analytics

import (
	"sort"
	"time"
)

// Analyzer is the query pipeline over one resolved record set. It is
// built once per session and treated as read-only afterwards; every
// query returns a fresh snapshot, so repeated calls are safe in any
// order.
type Analyzer struct {
	records []Record
}

func NewAnalyzer(records []Record) *Analyzer {
	return &Analyzer{records: records}
}

// Records returns the full resolved record set.
func (a *Analyzer) Records() []Record {
	return a.records
}

// TeamHours is one team rollup row.
type TeamHours struct {
	Team         string
	TotalMinutes float64
	TotalHours   float64
	Sessions     int
}

// PersonHours is one per-person rollup row. The team is carried along
// with the person even though resolver semantics put each person under
// at most one team.
type PersonHours struct {
	Person       string
	Team         string
	TotalMinutes float64
	TotalHours   float64
	Sessions     int
}

// PeriodHours is one team rollup row for a calendar month or ISO week.
// Period is "2006-01" for months and "2006-W02" for weeks, both of
// which order correctly as plain strings.
type PeriodHours struct {
	Team         string
	Period       string
	TotalMinutes float64
	TotalHours   float64
	Sessions     int
}

// FilterEnablement returns the records counting as enablement work for a
// known team. Records whose actor resolved to no team are dropped here:
// unmapped actors are invisible to all team reporting.
func (a *Analyzer) FilterEnablement() []Record {
	var out []Record
	for _, r := range a.records {
		if r.Enablement && r.Team != "" {
			out = append(out, r)
		}
	}
	return out
}

type accumulator struct {
	minutes  float64
	sessions int
}

// groupMinutes folds records into per-key minute/session accumulators,
// preserving first-seen key order for stable tie-breaking later.
func groupMinutes(records []Record, key func(Record) string) (map[string]*accumulator, []string) {
	groups := make(map[string]*accumulator)
	var order []string
	for _, r := range records {
		k := key(r)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
			order = append(order, k)
		}
		acc.minutes += r.Minutes
		acc.sessions++
	}
	return groups, order
}

// HoursByTeam sums enablement minutes per team over records started
// within [start, end] (inclusive; a zero bound is open on that side).
// Rows come back sorted by total hours descending, ties in first-seen
// order.
func (a *Analyzer) HoursByTeam(start, end time.Time) []TeamHours {
	var scoped []Record
	for _, r := range a.FilterEnablement() {
		if r.inRange(start, end) {
			scoped = append(scoped, r)
		}
	}

	groups, order := groupMinutes(scoped, func(r Record) string { return r.Team })

	rows := make([]TeamHours, 0, len(order))
	for _, team := range order {
		acc := groups[team]
		rows = append(rows, TeamHours{
			Team:         team,
			TotalMinutes: acc.minutes,
			TotalHours:   acc.minutes / 60,
			Sessions:     acc.sessions,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalHours > rows[j].TotalHours })
	return rows
}

// HoursByPerson sums enablement minutes per (person, team) pair, same
// filtering and ordering rules as HoursByTeam.
func (a *Analyzer) HoursByPerson(start, end time.Time) []PersonHours {
	var scoped []Record
	for _, r := range a.FilterEnablement() {
		if r.inRange(start, end) {
			scoped = append(scoped, r)
		}
	}

	type pair struct{ person, team string }
	groups := make(map[pair]*accumulator)
	var order []pair
	for _, r := range scoped {
		k := pair{r.Actor, r.Team}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
			order = append(order, k)
		}
		acc.minutes += r.Minutes
		acc.sessions++
	}

	rows := make([]PersonHours, 0, len(order))
	for _, k := range order {
		acc := groups[k]
		rows = append(rows, PersonHours{
			Person:       k.person,
			Team:         k.team,
			TotalMinutes: acc.minutes,
			TotalHours:   acc.minutes / 60,
			Sessions:     acc.sessions,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].TotalHours > rows[j].TotalHours })
	return rows
}

// MonthlyHoursByTeam groups enablement minutes by (team, month). No date
// filter applies at this layer; callers narrow the result afterwards
// with FilterPeriods. Rows are ordered by team, then period.
func (a *Analyzer) MonthlyHoursByTeam() []PeriodHours {
	return a.periodHoursByTeam(monthKey)
}

// WeeklyHoursByTeam is MonthlyHoursByTeam keyed by ISO week.
func (a *Analyzer) WeeklyHoursByTeam() []PeriodHours {
	return a.periodHoursByTeam(weekKey)
}

func (a *Analyzer) periodHoursByTeam(key func(time.Time) string) []PeriodHours {
	type pair struct{ team, period string }
	groups := make(map[pair]*accumulator)
	var order []pair
	for _, r := range a.FilterEnablement() {
		k := pair{r.Team, key(r.StartedAt)}
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{}
			groups[k] = acc
			order = append(order, k)
		}
		acc.minutes += r.Minutes
		acc.sessions++
	}

	rows := make([]PeriodHours, 0, len(order))
	for _, k := range order {
		acc := groups[k]
		rows = append(rows, PeriodHours{
			Team:         k.team,
			Period:       k.period,
			TotalMinutes: acc.minutes,
			TotalHours:   acc.minutes / 60,
			Sessions:     acc.sessions,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Team != rows[j].Team {
			return rows[i].Team < rows[j].Team
		}
		return rows[i].Period < rows[j].Period
	})
	return rows
}

// FilterPeriods narrows period rows to [from, to] by plain string
// comparison, which is exact for the zero-padded period keys. Empty
// bounds are open.
func FilterPeriods(rows []PeriodHours, from, to string) []PeriodHours {
	var out []PeriodHours
	for _, row := range rows {
		if from != "" && row.Period < from {
			continue
		}
		if to != "" && row.Period > to {
			continue
		}
		out = append(out, row)
	}
	return out
}
