package report_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/report"
	"github.com/agmlego/novatime/internal/timesheet"
)

func fixedNow() time.Time {
	return time.Date(2022, 6, 23, 14, 30, 0, 0, nvtime.Location())
}

func entry(day time.Time, hours time.Duration, open bool) *timesheet.Entry {
	in := day.Add(9 * time.Hour)
	e := &timesheet.Entry{
		PunchDate:       day,
		DateKey:         nvtime.FormatDateKey(day),
		PayCode:         timesheet.PayCode{Code: 1, Description: "Regular"},
		In:              &timesheet.Punch{Direction: timesheet.PunchIn, Time: in},
		WorkHours:       hours,
		DailyTotalHours: hours,
	}
	if open {
		e.Exceptions.MissingPunch = true
	} else {
		e.Out = &timesheet.Punch{Direction: timesheet.PunchOut, Time: in.Add(hours)}
	}
	return e
}

func buildSheet(t *testing.T) *timesheet.Timesheet {
	t.Helper()
	period, err := timesheet.NewDatePeriod(
		time.Date(2022, 6, 20, 0, 0, 0, 0, nvtime.Location()),
		time.Date(2022, 7, 3, 0, 0, 0, 0, nvtime.Location()))
	if err != nil {
		t.Fatal(err)
	}

	ts := timesheet.New(period, 40*time.Hour, timesheet.WithClock(fixedNow))

	mon := time.Date(2022, 6, 20, 0, 0, 0, 0, nvtime.Location())
	tue := mon.AddDate(0, 0, 1)
	thu := mon.AddDate(0, 0, 3)

	monday := entry(mon, 15*time.Hour, false)
	tuesday := entry(tue, 16*time.Hour, false)
	tuesday.Exceptions.Tardy = true
	today := entry(thu, 0, true)

	ts.Entries = map[string][]*timesheet.Entry{
		timesheet.DateKey(mon): {monday},
		timesheet.DateKey(tue): {tuesday},
		timesheet.DateKey(thu): {today},
	}
	ts.Hours = timesheet.HourTotals{
		ThisWeek: 31 * time.Hour,
		Total:    31 * time.Hour,
	}
	return ts
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	report.Write(&buf, buildSheet(t))
	out := buf.String()

	for _, want := range []string{
		"Pay period from 2022-06-20 to 2022-07-03",
		"2022-06-21",
		"Tardy",
		"This week: 31:00 (9:00 left)",
		"clock out by 18:00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report output missing %q:\n%s", want, out)
		}
	}

	// No hours last week, so no last-week line.
	if strings.Contains(out, "Last week") {
		t.Errorf("report shows empty last week:\n%s", out)
	}
}

func TestExportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timesheet.xlsx")

	if err := report.ExportXLSX(path, buildSheet(t)); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
}
