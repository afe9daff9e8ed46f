package mapping

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/effortscope/effortscope/internal/analytics"
)

// TeamMapping is the static configuration associating actor names with
// teams and marking which categories count as enablement work. It is
// loaded once per session and read-only afterwards.
type TeamMapping struct {
	Teams                map[string][]string `json:"teams"`
	EnablementCategories []string            `json:"enablement_categories"`
}

// Load reads a team mapping from a JSON file.
func Load(path string) (*TeamMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team mapping: %w", err)
	}
	var m TeamMapping
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing team mapping: %w", err)
	}
	return &m, nil
}

// Resolver annotates records with their team and enablement flag. Both
// indexes are pure functions of the mapping.
type Resolver struct {
	teamFor    map[string]string
	enablement map[string]bool
}

// NewResolver builds the actor→team reverse index. Teams are processed
// in sorted name order, so an actor listed under two teams lands on the
// alphabetically later one deterministically. Duplicate membership is a
// configuration mistake, not an error.
func NewResolver(m *TeamMapping) *Resolver {
	teams := make([]string, 0, len(m.Teams))
	for team := range m.Teams {
		teams = append(teams, team)
	}
	sort.Strings(teams)

	teamFor := make(map[string]string)
	for _, team := range teams {
		for _, actor := range m.Teams[team] {
			teamFor[actor] = team
		}
	}

	enablement := make(map[string]bool, len(m.EnablementCategories))
	for _, cat := range m.EnablementCategories {
		enablement[cat] = true
	}

	return &Resolver{teamFor: teamFor, enablement: enablement}
}

// TeamFor looks up the team claiming an actor.
func (r *Resolver) TeamFor(actor string) (string, bool) {
	team, ok := r.teamFor[actor]
	return team, ok
}

// IsEnablement reports whether a category counts as enablement work.
func (r *Resolver) IsEnablement(category string) bool {
	return r.enablement[category]
}

// Annotate returns a copy of the records with Team and Enablement
// assigned. Actors absent from the mapping keep an empty team; the
// aggregation layer drops them from team-scoped views silently.
func (r *Resolver) Annotate(records []analytics.Record) []analytics.Record {
	out := make([]analytics.Record, len(records))
	for i, rec := range records {
		rec.Team = r.teamFor[rec.Actor]
		rec.Enablement = r.enablement[rec.Category]
		out[i] = rec
	}
	return out
}

// Unmapped lists the actors that appear on enablement-category records
// without being claimed by any team, sorted. This is the coverage view
// used to spot gaps in the mapping.
func (r *Resolver) Unmapped(records []analytics.Record) []string {
	seen := make(map[string]bool)
	var actors []string
	for _, rec := range records {
		if !r.enablement[rec.Category] {
			continue
		}
		if _, ok := r.teamFor[rec.Actor]; ok {
			continue
		}
		if !seen[rec.Actor] {
			seen[rec.Actor] = true
			actors = append(actors, rec.Actor)
		}
	}
	sort.Strings(actors)
	return actors
}
