// Package nvtime parses and formats the date/time string shapes used by
// the NOVATime endpoints. The vendor never sends zone information; every
// instant is interpreted in the employer's local zone.
package nvtime

import (
	"fmt"
	"time"
)

// Vendor string formats as Go reference layouts.
const (
	// ParamDateFormat is the query-parameter date shape ("Mon Jun 20 2022").
	ParamDateFormat = "Mon Jan 02 2006"
	// PunchFormat is the punch timestamp shape ("06/20/2022 09:00:00").
	PunchFormat = "01/02/2006 15:04:05"
	// PunchTimeFormat is the adjusted-punch time-of-day shape ("09:00AM").
	PunchTimeFormat = "03:04PM"
	// DateFormat is the short date shape ("6/20/2022").
	DateFormat = "1/2/2006"
	// DateKeyFormat is the month/day grouping key shape ("06/20").
	DateKeyFormat = "01/02"
	// WriteFormat is the UTC timestamp shape accepted by the write endpoint.
	WriteFormat = "2006-01-02T15:04:05.000Z"
)

// DefaultZone is the employer's local zone; overridable via SetZone.
const DefaultZone = "America/Detroit"

var location *time.Location

func init() {
	if err := SetZone(DefaultZone); err != nil {
		location = time.UTC
	}
}

// SetZone changes the zone every vendor instant is interpreted in.
// Call once at startup, before any parsing.
func SetZone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", name, err)
	}
	location = loc
	return nil
}

// Location returns the fixed zone vendor instants are anchored to.
func Location() *time.Location {
	return location
}

// ParseError reports a vendor date/time string that did not match its
// expected format. The offending raw value is preserved.
type ParseError struct {
	Value  string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q with layout %q", e.Value, e.Format)
}

func (e *ParseError) Unwrap() error { return e.Err }

func parseIn(layout, value string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, value, location)
	if err != nil {
		return time.Time{}, &ParseError{Value: value, Format: layout, Err: err}
	}
	return t, nil
}

// ParsePunch parses a punch timestamp string in the fixed local zone.
func ParsePunch(value string) (time.Time, error) {
	return parseIn(PunchFormat, value)
}

// ParsePunchValue parses a punch value that may already be an instant.
// Passing a time.Time returns it unchanged, so the function is idempotent.
func ParsePunchValue(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case string:
		return ParsePunch(v)
	default:
		return time.Time{}, &ParseError{Value: fmt.Sprint(value), Format: PunchFormat}
	}
}

// ParseDate parses a short vendor date string in the fixed local zone.
func ParseDate(value string) (time.Time, error) {
	return parseIn(DateFormat, value)
}

// FormatPunch renders an instant in the punch timestamp shape.
func FormatPunch(t time.Time) string {
	return t.In(location).Format(PunchFormat)
}

// FormatDate renders an instant in the short date shape.
func FormatDate(t time.Time) string {
	return t.In(location).Format(DateFormat)
}

// FormatParamDate renders an instant in the query-parameter date shape.
func FormatParamDate(t time.Time) string {
	return t.In(location).Format(ParamDateFormat)
}

// FormatDateKey renders an instant in the month/day grouping-key shape.
func FormatDateKey(t time.Time) string {
	return t.In(location).Format(DateKeyFormat)
}

// FormatPunchTime renders an instant in the adjusted-punch time shape.
func FormatPunchTime(t time.Time) string {
	return t.In(location).Format(PunchTimeFormat)
}

// FormatWrite renders an instant in the UTC write-endpoint shape.
func FormatWrite(t time.Time) string {
	return t.UTC().Format(WriteFormat)
}

// FormatHours formats a duration as hours and minutes like "9:30" or "0:05".
func FormatHours(d time.Duration) string {
	neg := ""
	if d < 0 {
		neg = "-"
		d = -d
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	return fmt.Sprintf("%s%d:%02d", neg, h, m)
}

// StartOfDay returns 00:00:00 of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// NextWeekday returns the first day on or after t that falls on wd,
// at 00:00:00.
func NextWeekday(t time.Time, wd time.Weekday) time.Time {
	d := StartOfDay(t)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset)
}

// WeekBounds returns the half-open interval covering "this week" relative
// to now: [lastSunday, thisSunday) where thisSunday is the first Sunday on
// or after now. On a Sunday the interval is the week just ended; that
// matches the reference behavior and the payroll week it reports against.
func WeekBounds(now time.Time) (lastSunday, thisSunday time.Time) {
	thisSunday = NextWeekday(now, time.Sunday)
	return thisSunday.AddDate(0, 0, -7), thisSunday
}
