package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/effortscope/effortscope/internal/analytics"
)

// Column headers of the time-tracking CSV export. Matching is
// case-insensitive.
const (
	colActor    = "activity name"
	colStarted  = "time started"
	colEnded    = "time ended"
	colDuration = "duration minutes"
	colCategory = "categories"
	colComment  = "comment"
)

// timestampLayouts are tried in order when parsing the export's time
// columns.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ReadCSV parses a time-tracking CSV export into activity records.
// Rows that violate the input contract (missing fields, unparsable
// timestamp or duration, negative duration) are skipped with a warning
// rather than reaching the analytics core.
func ReadCSV(path string, logger *zap.Logger) ([]analytics.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	cols, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	var records []analytics.Record
	lineNo := 1
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			logger.Warn("skipping malformed CSV row", zap.Int("line", lineNo), zap.Error(err))
			skipped++
			continue
		}

		rec, err := parseRow(row, cols)
		if err != nil {
			logger.Warn("skipping invalid record", zap.Int("line", lineNo), zap.Error(err))
			skipped++
			continue
		}
		records = append(records, rec)
	}

	logger.Info("parsed CSV export",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))

	return records, nil
}

type columns struct {
	actor, started, ended, duration, category, comment int
}

func columnIndex(header []string) (columns, error) {
	idx := map[string]int{}
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cols := columns{comment: -1}
	required := []struct {
		name string
		dst  *int
	}{
		{colActor, &cols.actor},
		{colStarted, &cols.started},
		{colEnded, &cols.ended},
		{colDuration, &cols.duration},
		{colCategory, &cols.category},
	}
	for _, req := range required {
		i, ok := idx[req.name]
		if !ok {
			return columns{}, fmt.Errorf("CSV is missing required column %q", req.name)
		}
		*req.dst = i
	}
	if i, ok := idx[colComment]; ok {
		cols.comment = i
	}
	return cols, nil
}

func parseRow(row []string, cols columns) (analytics.Record, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	actor := field(cols.actor)
	if actor == "" {
		return analytics.Record{}, fmt.Errorf("empty activity name")
	}

	started, err := parseTimestamp(field(cols.started))
	if err != nil {
		return analytics.Record{}, fmt.Errorf("parsing start time: %w", err)
	}
	ended, err := parseTimestamp(field(cols.ended))
	if err != nil {
		return analytics.Record{}, fmt.Errorf("parsing end time: %w", err)
	}

	minutes, err := strconv.ParseFloat(field(cols.duration), 64)
	if err != nil {
		return analytics.Record{}, fmt.Errorf("parsing duration: %w", err)
	}
	if minutes < 0 {
		return analytics.Record{}, fmt.Errorf("negative duration %.1f", minutes)
	}

	return analytics.Record{
		Actor:     actor,
		StartedAt: started,
		EndedAt:   ended,
		Minutes:   minutes,
		Category:  field(cols.category),
		Comment:   field(cols.comment),
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
