package timesheet_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
	"github.com/agmlego/novatime/internal/timesheet"
)

// fixedNow is Thursday 2022-06-23 14:30 local: midweek inside the sample
// pay period, so 06/19-06/25 is "this week".
func fixedNow() time.Time {
	return time.Date(2022, 6, 23, 14, 30, 0, 0, nvtime.Location())
}

func samplePeriod(t *testing.T) timesheet.DatePeriod {
	t.Helper()
	period, err := timesheet.NewDatePeriod(
		time.Date(2022, 6, 20, 0, 0, 0, 0, nvtime.Location()),
		time.Date(2022, 7, 3, 0, 0, 0, 0, nvtime.Location()))
	require.NoError(t, err)
	return period
}

// dayRecord derives a record for the given punch date and daily total
// from the canonical sample entry.
func dayRecord(t *testing.T, day time.Time, hours float64) raw.Record {
	t.Helper()
	r := sampleRecord(t)
	r["dPunchDate"] = nvtime.FormatPunch(nvtime.StartOfDay(day))
	r["dWorkDate"] = r["dPunchDate"]
	r["DateKey"] = nvtime.FormatDateKey(day)
	r["nDailyTotalHours"] = hours
	r["nWorkHours"] = hours
	in := time.Date(day.Year(), day.Month(), day.Day(), 9, 0, 0, 0, nvtime.Location())
	r["dIn"] = nvtime.FormatPunch(in)
	r["dOGIn"] = r["dIn"]
	r["tPunchDateTime"] = r["dIn"]
	r["dOut"] = nvtime.FormatPunch(in.Add(raw.FromHours(hours)))
	r["dOGOut"] = r["dOut"]
	return r
}

// openRecord derives a still-clocked-in record for the given punch date.
func openRecord(t *testing.T, day time.Time, autoMealMinutes float64) raw.Record {
	t.Helper()
	r := dayRecord(t, day, 0)
	for _, key := range []string{"dOut", "dOGOut", "nAdjustOut", "cOutGPS", "nTZOut", "mOutRecording"} {
		r[key] = nil
	}
	r["lMissingPunchException"] = true
	r["nAutoMealMinutes"] = autoMealMinutes
	return r
}

func newSheet(t *testing.T, records ...raw.Record) *timesheet.Timesheet {
	t.Helper()
	ts := timesheet.New(samplePeriod(t), 40*time.Hour, timesheet.WithClock(fixedNow))
	require.NoError(t, ts.Parse(records))
	return ts
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, nvtime.Location())
}

func TestWeekBucketing(t *testing.T) {
	// Saturday 06/18 is last week; Sunday 06/19 starts this week;
	// the following Sunday 06/26 is outside this week again.
	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 18), 4),
		dayRecord(t, day(2022, 6, 19), 5),
		dayRecord(t, day(2022, 6, 20), 8),
	)

	require.Equal(t, 4*time.Hour, ts.Hours.LastWeek)
	require.Equal(t, 13*time.Hour, ts.Hours.ThisWeek)
	require.Equal(t, 17*time.Hour, ts.Hours.Total)

	require.False(t, ts.IsThisWeek(day(2022, 6, 18)))
	require.True(t, ts.IsThisWeek(day(2022, 6, 19)))
	require.False(t, ts.IsThisWeek(day(2022, 6, 26)))
}

func TestHourTotals(t *testing.T) {
	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 20), 8),
		dayRecord(t, day(2022, 6, 21), 8),
	)

	require.Equal(t, time.Duration(0), ts.Hours.LastWeek)
	require.Equal(t, 16*time.Hour, ts.Hours.ThisWeek)
	require.Equal(t, 24*time.Hour, ts.Remaining())
}

func TestParseKeepsStateOnFailure(t *testing.T) {
	ts := newSheet(t, dayRecord(t, day(2022, 6, 20), 8))

	bad := dayRecord(t, day(2022, 6, 21), 8)
	delete(bad, "nDailyTotalHours")

	err := ts.Parse([]raw.Record{dayRecord(t, day(2022, 6, 21), 8), bad})
	require.Error(t, err)

	// The previous parse survives untouched.
	require.Len(t, ts.Entries, 1)
	require.Equal(t, 8*time.Hour, ts.Hours.ThisWeek)
}

func TestMultipleEntriesPerDay(t *testing.T) {
	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 20), 4),
		dayRecord(t, day(2022, 6, 20), 3),
	)

	require.Len(t, ts.Entries["2022-06-20"], 2)
	require.Equal(t, 7*time.Hour, ts.Hours.ThisWeek)
}

func TestPredictClockOutNoEntryToday(t *testing.T) {
	ts := newSheet(t, dayRecord(t, day(2022, 6, 20), 8))

	clockIn, clockOut := ts.PredictClockOut(ts.Remaining())
	require.Nil(t, clockIn)
	require.Nil(t, clockOut)
}

func TestPredictClockOutOpenShift(t *testing.T) {
	// 31 worked hours before today; 9:00 remain of the 40-hour target.
	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 20), 15),
		dayRecord(t, day(2022, 6, 21), 16),
		openRecord(t, day(2022, 6, 23), 30),
	)
	require.Equal(t, 9*time.Hour, ts.Remaining())

	clockIn, clockOut := ts.PredictClockOut(ts.Remaining())
	require.NotNil(t, clockIn)
	require.NotNil(t, clockOut)

	wantIn := time.Date(2022, 6, 23, 9, 0, 0, 0, nvtime.Location())
	require.True(t, clockIn.Equal(wantIn))
	// 9:00 remaining exceeds the long-shift threshold, so the auto meal
	// deduction pushes the prediction out: 09:00 + 9:00 + 0:30 = 18:30.
	require.True(t, clockOut.Equal(wantIn.Add(9*time.Hour+30*time.Minute)))
}

func TestPredictClockOutShortRemainder(t *testing.T) {
	// 36 worked hours: 4:00 remain, under the auto-meal threshold.
	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 20), 18),
		dayRecord(t, day(2022, 6, 21), 18),
		openRecord(t, day(2022, 6, 23), 30),
	)
	require.Equal(t, 4*time.Hour, ts.Remaining())

	clockIn, clockOut := ts.PredictClockOut(ts.Remaining())
	require.NotNil(t, clockOut)
	require.True(t, clockOut.Equal(clockIn.Add(4*time.Hour)))
}

func TestPredictClockOutClosedShift(t *testing.T) {
	// Today's shift is complete; only the clock-in comes back.
	ts := newSheet(t, dayRecord(t, day(2022, 6, 23), 8))

	clockIn, clockOut := ts.PredictClockOut(ts.Remaining())
	require.NotNil(t, clockIn)
	require.Nil(t, clockOut)
}

func TestPredictClockOutLastEntryWins(t *testing.T) {
	// Two entries today: a closed morning shift and an open afternoon
	// one. The last entry in response order drives the prediction.
	open := openRecord(t, day(2022, 6, 23), 0)
	in := time.Date(2022, 6, 23, 13, 0, 0, 0, nvtime.Location())
	open["dIn"] = nvtime.FormatPunch(in)
	open["dOGIn"] = open["dIn"]

	ts := newSheet(t,
		dayRecord(t, day(2022, 6, 23), 4),
		open,
	)

	clockIn, clockOut := ts.PredictClockOut(2 * time.Hour)
	require.NotNil(t, clockOut)
	require.True(t, clockIn.Equal(in))
	require.True(t, clockOut.Equal(in.Add(2*time.Hour)))
}

func TestExceptionDates(t *testing.T) {
	clean := dayRecord(t, day(2022, 6, 20), 8)
	for _, key := range []string{"lEarlyInException", "lAutoDeductMealException"} {
		clean[key] = false
	}
	flagged := dayRecord(t, day(2022, 6, 21), 8)
	flagged["lTardyException"] = true

	ts := newSheet(t, clean, flagged)

	dates := ts.ExceptionDates()
	require.NotContains(t, dates, "2022-06-20")
	require.Contains(t, dates, "2022-06-21")
	require.Contains(t, dates["2022-06-21"], "lTardyException")
}
