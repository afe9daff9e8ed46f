package analytics

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrNoData reports a profile scope that matched no records. Callers
// treat it as an empty result, not a failure.
var ErrNoData = errors.New("no data found for the specified filters")

// maxProfileKeywords caps the ranked keyword list handed to profile
// consumers; DistinctKeywords still reports the true total.
const maxProfileKeywords = 100

// BreakdownStat is one row of a category or activity-type breakdown.
type BreakdownStat struct {
	Name       string
	Minutes    float64
	Hours      float64
	Percentage float64
	Tasks      int
}

// MonthStat is one row of the chronological monthly distribution.
type MonthStat struct {
	Month string
	Hours float64
	Tasks int
}

// DateRange is the span actually covered by matched records, which may
// be narrower than the requested filter window.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// RoleProfile is the aggregate view of one person's activity over a
// time window.
type RoleProfile struct {
	TotalHours           float64
	TaskCount            int
	TasksWithComments    int
	TasksWithoutComments int
	Categories           []BreakdownStat
	ActivityTypes        []BreakdownStat
	Keywords             []KeywordStat
	DistinctKeywords     int
	Monthly              []MonthStat
	Range                DateRange
}

// BuildProfile mines a role profile from every record in [start, end],
// optionally scoped to one actor (matched with the personal-work marker
// stripped, so "Deploy" selects ":Deploy" entries too). Unlike the team
// rollups this works over the full record set, not the enablement
// subset. An empty scope returns ErrNoData.
func (a *Analyzer) BuildProfile(actor string, start, end time.Time) (*RoleProfile, error) {
	return a.buildProfile(actor, start, end, DefaultMinKeywordLength)
}

// BuildProfileMinLength is BuildProfile with an explicit keyword length
// floor.
func (a *Analyzer) BuildProfileMinLength(actor string, start, end time.Time, minKeywordLength int) (*RoleProfile, error) {
	return a.buildProfile(actor, start, end, minKeywordLength)
}

func (a *Analyzer) buildProfile(actor string, start, end time.Time, minKeywordLength int) (*RoleProfile, error) {
	wantActor := strings.ReplaceAll(actor, ":", "")

	var scoped []Record
	for _, r := range a.records {
		if !r.inRange(start, end) {
			continue
		}
		if wantActor != "" && r.ActivityType() != wantActor {
			continue
		}
		scoped = append(scoped, r)
	}
	if len(scoped) == 0 {
		return nil, ErrNoData
	}

	totalHours := 0.0
	withComments := 0
	rng := DateRange{Start: scoped[0].StartedAt, End: scoped[0].StartedAt}
	for _, r := range scoped {
		totalHours += r.Hours()
		if strings.TrimSpace(r.Comment) != "" {
			withComments++
		}
		if r.StartedAt.Before(rng.Start) {
			rng.Start = r.StartedAt
		}
		if r.StartedAt.After(rng.End) {
			rng.End = r.StartedAt
		}
	}

	keywords, distinct := MineKeywords(scoped, minKeywordLength)
	if len(keywords) > maxProfileKeywords {
		keywords = keywords[:maxProfileKeywords]
	}

	profile := &RoleProfile{
		TotalHours:           round2(totalHours),
		TaskCount:            len(scoped),
		TasksWithComments:    withComments,
		TasksWithoutComments: len(scoped) - withComments,
		Categories:           breakdown(scoped, totalHours, func(r Record) string { return r.Category }),
		ActivityTypes:        breakdown(scoped, totalHours, Record.ActivityType),
		Keywords:             keywords,
		DistinctKeywords:     distinct,
		Monthly:              monthlyDistribution(scoped),
		Range:                rng,
	}
	return profile, nil
}

// breakdown groups records by a key and materializes rows sorted by
// hours descending, ties in first-seen order. Percentages are guarded
// against a zero total.
func breakdown(records []Record, totalHours float64, key func(Record) string) []BreakdownStat {
	groups, order := groupMinutes(records, key)

	rows := make([]BreakdownStat, 0, len(order))
	for _, k := range order {
		acc := groups[k]
		hours := acc.minutes / 60
		pct := 0.0
		if totalHours > 0 {
			pct = round1(hours / totalHours * 100)
		}
		rows = append(rows, BreakdownStat{
			Name:       k,
			Minutes:    acc.minutes,
			Hours:      hours,
			Percentage: pct,
			Tasks:      acc.sessions,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Hours > rows[j].Hours })
	return rows
}

func monthlyDistribution(records []Record) []MonthStat {
	groups, order := groupMinutes(records, func(r Record) string { return monthKey(r.StartedAt) })
	sort.Strings(order)

	rows := make([]MonthStat, 0, len(order))
	for _, month := range order {
		acc := groups[month]
		rows = append(rows, MonthStat{
			Month: month,
			Hours: acc.minutes / 60,
			Tasks: acc.sessions,
		})
	}
	return rows
}
