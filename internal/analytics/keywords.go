package analytics

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// DefaultMinKeywordLength is the shortest segment kept by the keyword
// extractor when the caller does not override it.
const DefaultMinKeywordLength = 3

var (
	// Segments split on runs of list separators or on two-plus spaces,
	// so multi-word phrases separated by single spaces stay intact.
	segmentRE = regexp.MustCompile(`[,;/|]+|\s{2,}`)

	// Everything except letters, digits, underscore, whitespace and
	// hyphen is stripped from a segment before it becomes a keyword.
	stripRE = regexp.MustCompile(`[^\w\s-]`)
)

// ExtractKeywords tokenizes a free-text comment into keyword phrases.
// It is a lightweight heuristic: split on separators, strip noise
// characters, drop anything shorter than minLength. An empty comment
// yields no keywords.
func ExtractKeywords(comment string, minLength int) []string {
	if minLength <= 0 {
		minLength = DefaultMinKeywordLength
	}
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil
	}

	var keywords []string
	for _, segment := range segmentRE.Split(comment, -1) {
		segment = strings.TrimSpace(segment)
		if len(segment) < minLength {
			continue
		}
		cleaned := strings.TrimSpace(stripRE.ReplaceAllString(segment, ""))
		if len(cleaned) >= minLength {
			keywords = append(keywords, cleaned)
		}
	}
	return keywords
}

// titleCase capitalizes the first letter of every word and lowercases
// the rest, the normalization under which keyword buckets merge.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				r = unicode.ToLower(r)
			} else {
				r = unicode.ToUpper(r)
			}
			prevLetter = true
		} else {
			prevLetter = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

// KeywordStat is the accumulated weight of one normalized keyword across
// a record set.
type KeywordStat struct {
	Keyword    string
	Count      int
	Hours      float64
	Percentage float64
}

// MineKeywords extracts and accumulates keywords over every comment in
// the record set. Each token occurrence counts once and credits the full
// record duration, so a comment yielding three tokens books its duration
// three times; that additive semantics is what the summary bullets rank
// on. Percentages are computed against the total hours of the whole
// scoped set (zero total yields zero percentages). Stats come back
// sorted by hours descending with first-seen order breaking ties,
// together with the number of distinct keywords.
func MineKeywords(records []Record, minLength int) ([]KeywordStat, int) {
	totalHours := 0.0
	for _, r := range records {
		totalHours += r.Hours()
	}

	counts := make(map[string]int)
	hours := make(map[string]float64)
	var order []string
	for _, r := range records {
		for _, kw := range ExtractKeywords(r.Comment, minLength) {
			normalized := titleCase(kw)
			if _, seen := counts[normalized]; !seen {
				order = append(order, normalized)
			}
			counts[normalized]++
			hours[normalized] += r.Hours()
		}
	}

	stats := make([]KeywordStat, 0, len(order))
	for _, kw := range order {
		pct := 0.0
		if totalHours > 0 {
			pct = round1(hours[kw] / totalHours * 100)
		}
		stats = append(stats, KeywordStat{
			Keyword:    kw,
			Count:      counts[kw],
			Hours:      round2(hours[kw]),
			Percentage: pct,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Hours > stats[j].Hours })
	return stats, len(order)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }
