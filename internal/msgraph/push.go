package msgraph

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agmlego/novatime/internal/timesheet"
)

// entryTag is the marker carried in an event body so previously pushed
// shifts can be recognized on later runs.
func entryTag(e *timesheet.Entry) string {
	return fmt.Sprintf("novatime:%d/%d", e.TimesheetSeq, e.Sequence)
}

// PushOptions control how timesheet entries are pushed to the calendar.
type PushOptions struct {
	// Subject is the subject prefix for created events.
	Subject string
	// Timezone is the IANA timezone name sent with event times.
	Timezone string
	// DryRun reports what would be created without calling the API.
	DryRun bool
}

// PushResult summarizes a push run.
type PushResult struct {
	Created int
	Skipped int
	Errors  []error
}

// MapEntryToEvent converts a completed shift into a calendar event.
// Open entries have no end time and cannot be mapped.
func MapEntryToEvent(e *timesheet.Entry, subject, timezone string) (CalendarEvent, error) {
	if e.In == nil || e.Out == nil {
		return CalendarEvent{}, fmt.Errorf("entry %d/%d has no complete punch pair", e.TimesheetSeq, e.Sequence)
	}

	const layout = "2006-01-02T15:04:05"
	return CalendarEvent{
		Subject: fmt.Sprintf("%s: %s", subject, e.PayCode.String()),
		ShowAs:  "busy",
		Start:   DateTimeZone{DateTime: e.In.Time.Format(layout), TimeZone: timezone},
		End:     DateTimeZone{DateTime: e.Out.Time.Format(layout), TimeZone: timezone},
		Body: &ItemBody{
			ContentType: "text",
			Content:     entryTag(e),
		},
	}, nil
}

// PushEntries creates one calendar event per completed shift in the
// timesheet, skipping open entries and shifts already on the calendar.
func (c *Client) PushEntries(ctx context.Context, ts *timesheet.Timesheet, opts PushOptions) (*PushResult, error) {
	existing, err := c.existingTags(ctx, ts, opts.Timezone)
	if err != nil {
		return nil, err
	}

	result := &PushResult{}
	for _, e := range sortedEntries(ts) {
		if e.Open() {
			result.Skipped++
			continue
		}
		if existing[entryTag(e)] {
			result.Skipped++
			continue
		}

		event, err := MapEntryToEvent(e, opts.Subject, opts.Timezone)
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}

		if opts.DryRun {
			result.Created++
			continue
		}
		if _, err := c.CreateEvent(ctx, event); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("entry %s: %w", e.DateKey, err))
			continue
		}
		result.Created++
	}
	return result, nil
}

// existingTags scans the calendar over the pay period and collects the
// entry tags of events pushed by earlier runs.
func (c *Client) existingTags(ctx context.Context, ts *timesheet.Timesheet, timezone string) (map[string]bool, error) {
	from := ts.PayPeriod.Start
	to := ts.PayPeriod.End.Add(24 * time.Hour)
	events, err := c.GetCalendarView(ctx, from, to, timezone)
	if err != nil {
		return nil, fmt.Errorf("scanning calendar for existing shifts: %w", err)
	}

	tags := make(map[string]bool)
	for _, ev := range events {
		if ev.IsCancelled {
			continue
		}
		if strings.HasPrefix(ev.BodyPreview, "novatime:") {
			tags[strings.TrimSpace(ev.BodyPreview)] = true
		}
	}
	return tags, nil
}

// sortedEntries flattens the timesheet's date buckets in date order.
func sortedEntries(ts *timesheet.Timesheet) []*timesheet.Entry {
	keys := make([]string, 0, len(ts.Entries))
	for k := range ts.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var entries []*timesheet.Entry
	for _, k := range keys {
		entries = append(entries, ts.Entries[k]...)
	}
	return entries
}
