package analytics

import (
	"fmt"
	"strings"
	"time"
)

// Record is one logged unit of work. Team and Enablement are assigned by
// the mapping resolver before the record reaches any query; both are zero
// for unresolved input.
type Record struct {
	Actor      string
	StartedAt  time.Time
	EndedAt    time.Time
	Minutes    float64
	Category   string
	Comment    string
	Team       string
	Enablement bool
}

// Hours returns the record duration in hours. Duration is always taken
// from Minutes, never recomputed from the timestamps.
func (r Record) Hours() float64 {
	return r.Minutes / 60
}

// ActivityType is the actor name with the personal-work marker stripped,
// so ":Deploy" and "Deploy" fold into the same activity bucket.
func (r Record) ActivityType() string {
	return strings.ReplaceAll(r.Actor, ":", "")
}

// inRange reports whether the record starts within [start, end], both
// bounds inclusive and either side unbounded when zero.
func (r Record) inRange(start, end time.Time) bool {
	if !start.IsZero() && r.StartedAt.Before(start) {
		return false
	}
	if !end.IsZero() && r.StartedAt.After(end) {
		return false
	}
	return true
}

// monthKey formats a timestamp as the zero-padded ISO year-month, e.g.
// "2024-03". Keys compare correctly as plain strings.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

// weekKey formats a timestamp as the ISO week, e.g. "2024-W09".
func weekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}
