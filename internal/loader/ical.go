package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/effortscope/effortscope/internal/analytics"
)

// ReadCalendar retrieves iCalendar events from a URL or file path and
// converts them to activity records: the event summary becomes the
// comment, the duration is taken from the event span. Events outside
// [windowStart, windowEnd] are dropped when bounds are given; zero
// bounds are open. Malformed events are skipped.
func ReadCalendar(ctx context.Context, source, actor, category string, windowStart, windowEnd time.Time, logger *zap.Logger) ([]analytics.Record, error) {
	var r io.ReadCloser

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetching calendar: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("calendar fetch returned status %d", resp.StatusCode)
		}
		r = resp.Body
	} else {
		f, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("opening calendar file: %w", err)
		}
		r = f
	}
	defer r.Close()

	dec := ical.NewDecoder(r)
	var records []analytics.Record
	skipped := 0

	for {
		cal, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing calendar: %w", err)
		}

		for _, component := range cal.Children {
			if component.Name != ical.CompEvent {
				continue
			}
			event := ical.Event{Component: component}

			start, err := event.DateTimeStart(nil)
			if err != nil {
				skipped++
				continue
			}
			end, err := event.DateTimeEnd(nil)
			if err != nil {
				skipped++
				continue
			}

			if !windowStart.IsZero() && start.Before(windowStart) {
				continue
			}
			if !windowEnd.IsZero() && start.After(windowEnd) {
				continue
			}

			summary, _ := event.Props.Text(ical.PropSummary)
			records = append(records, analytics.Record{
				Actor:     actor,
				StartedAt: start,
				EndedAt:   end,
				Minutes:   end.Sub(start).Minutes(),
				Category:  category,
				Comment:   summary,
			})
		}
	}

	logger.Info("parsed calendar",
		zap.String("source", source),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped))

	return records, nil
}
