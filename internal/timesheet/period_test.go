package timesheet_test

import (
	"testing"
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/timesheet"
)

func TestNewDatePeriodRejectsInversion(t *testing.T) {
	start := day(2022, 6, 20)

	if _, err := timesheet.NewDatePeriod(start, start); err != nil {
		t.Errorf("zero-length period: %v", err)
	}
	if _, err := timesheet.NewDatePeriod(start, start.AddDate(0, 0, -1)); err == nil {
		t.Error("inverted period accepted")
	}
}

func TestDatePeriodString(t *testing.T) {
	period, err := timesheet.NewDatePeriod(day(2022, 6, 20), day(2022, 7, 3))
	if err != nil {
		t.Fatal(err)
	}
	// Archive files are keyed by this exact rendering.
	if got := period.String(); got != "2022-06-20--2022-07-03" {
		t.Errorf("String() = %q", got)
	}
}

func TestDatePeriodContains(t *testing.T) {
	period, _ := timesheet.NewDatePeriod(day(2022, 6, 20), day(2022, 7, 3))

	tests := []struct {
		t    time.Time
		want bool
	}{
		{day(2022, 6, 19), false},
		{day(2022, 6, 20), true},
		{day(2022, 7, 3), true},
		{day(2022, 7, 4), false},
	}
	for _, tt := range tests {
		if got := period.Contains(tt.t); got != tt.want {
			t.Errorf("Contains(%s) = %v, want %v", tt.t.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestCurrentPayPeriod(t *testing.T) {
	// Paychecks land on Fridays; the period containing the following
	// week runs Monday through the Sunday a week after payday.
	payday := time.Date(2022, 6, 17, 0, 0, 0, 0, nvtime.Location())

	period := timesheet.CurrentPayPeriod(payday)

	if got := period.String(); got != "2022-06-13--2022-06-26" {
		t.Errorf("CurrentPayPeriod = %q", got)
	}
}
