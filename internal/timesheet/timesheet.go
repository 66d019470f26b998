// Package timesheet models a NOVATime pay-period timesheet: the Entry
// aggregate with its nested value objects, the raw-record round trip, and
// the week-bucketed hour totals with clock-out prediction.
package timesheet

import (
	"log/slog"
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
)

// HourTotals is the week-bucketed sum of the vendor's per-entry daily
// totals over a pay period.
type HourTotals struct {
	LastWeek time.Duration
	ThisWeek time.Duration
	Total    time.Duration
}

// Timesheet is a pay-period-scoped collection of entries keyed by punch
// date. A date can map to several entries (split shifts, multiple pay
// codes on one day). Parse replaces the whole collection; it is never
// partially updated.
type Timesheet struct {
	PayPeriod DatePeriod
	WeekHours time.Duration
	Entries   map[string][]*Entry
	Hours     HourTotals

	now func() time.Time
	log *slog.Logger
}

// Option configures a Timesheet.
type Option func(*Timesheet)

// WithClock substitutes the time source, fixing "now" for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Timesheet) { t.now = now }
}

// WithLogger substitutes the diagnostics sink.
func WithLogger(l *slog.Logger) Option {
	return func(t *Timesheet) { t.log = l }
}

// New creates an empty timesheet for a pay period. weekHours is the
// employee's target working time per week, used by the clock-out report.
func New(period DatePeriod, weekHours time.Duration, opts ...Option) *Timesheet {
	t := &Timesheet{
		PayPeriod: period,
		WeekHours: weekHours,
		Entries:   map[string][]*Entry{},
		now:       time.Now,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DateKey renders the map key for a punch date.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Parse builds the entry map and hour totals from the raw record list in
// one pass. On any record error nothing is replaced; the previous state
// stays intact and no partial timesheet is exposed.
func (t *Timesheet) Parse(records []raw.Record) error {
	entries := make(map[string][]*Entry, len(records))
	var hours HourTotals

	for _, record := range records {
		entry, err := ParseEntry(record)
		if err != nil {
			return err
		}
		key := DateKey(entry.PunchDate)
		entries[key] = append(entries[key], entry)

		if t.IsThisWeek(entry.PunchDate) {
			hours.ThisWeek += entry.DailyTotalHours
		} else {
			hours.LastWeek += entry.DailyTotalHours
		}
		hours.Total += entry.DailyTotalHours
	}

	t.Entries = entries
	t.Hours = hours
	t.log.Debug("parsed timesheet",
		"period", t.PayPeriod.String(),
		"days", len(entries),
		"total", nvtime.FormatHours(hours.Total))
	return nil
}

// IsThisWeek reports whether a date falls in today's real-world week,
// the half-open interval from the most recent Sunday to the upcoming
// Sunday. The week is anchored to now, not to the pay period being
// viewed.
func (t *Timesheet) IsThisWeek(date time.Time) bool {
	lastSunday, thisSunday := nvtime.WeekBounds(t.now())
	return !date.Before(lastSunday) && date.Before(thisSunday)
}

// Remaining is the time left to reach the weekly target.
func (t *Timesheet) Remaining() time.Duration {
	return t.WeekHours - t.Hours.ThisWeek
}

// longShift is the open-shift length past which the vendor auto-deducts
// an unpaid meal break.
const longShift = 8 * time.Hour

// PredictClockOut guesses when to clock out today to land on remaining
// hours for the week.
//
// If today has no entry there is nothing to predict and both results are
// nil. When today's entry carries the missing-punch exception (clocked in,
// never out), the prediction is punch-in plus remaining, plus the entry's
// auto-meal deduction when the remainder exceeds eight hours. Without the
// missing-punch exception the shift is already closed and only the
// clock-in time is returned.
//
// This is a heuristic: it assumes one continuous open shift, and when a
// day has several entries the last one in response order wins. It ignores
// overtime rules and the pay period's own cutoff.
func (t *Timesheet) PredictClockOut(remaining time.Duration) (clockIn, clockOut *time.Time) {
	today := t.Entries[DateKey(t.now())]
	if len(today) == 0 {
		return nil, nil
	}

	entry := today[len(today)-1]
	in := entry.In.Time
	if !entry.Exceptions.MissingPunch {
		return &in, nil
	}

	out := in.Add(remaining)
	if remaining > longShift {
		out = out.Add(entry.Exceptions.AutoMealMinutes)
	}
	return &in, &out
}

// ExceptionDates summarizes the raised exception flags per punch date,
// skipping dates with none.
func (t *Timesheet) ExceptionDates() map[string][]string {
	out := map[string][]string{}
	for key, entries := range t.Entries {
		for _, entry := range entries {
			if flags := entry.Exceptions.Flagged(); len(flags) > 0 {
				out[key] = append(out[key], flags...)
			}
		}
	}
	return out
}
