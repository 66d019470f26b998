package timesheet

import (
	"fmt"
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
)

// DatePeriod is an inclusive span of days: a pay period, a work period,
// or an expected meal window.
type DatePeriod struct {
	Start time.Time
	End   time.Time
}

// NewDatePeriod builds a period, rejecting an end before the start.
func NewDatePeriod(start, end time.Time) (DatePeriod, error) {
	if end.Before(start) {
		return DatePeriod{}, fmt.Errorf("period end %s before start %s",
			end.Format("2006-01-02"), start.Format("2006-01-02"))
	}
	return DatePeriod{Start: start, End: end}, nil
}

// String renders the period as "YYYY-MM-DD--YYYY-MM-DD". Archived raw
// responses are keyed by this exact form; do not change it.
func (p DatePeriod) String() string {
	return fmt.Sprintf("%s--%s", p.Start.Format("2006-01-02"), p.End.Format("2006-01-02"))
}

// Contains reports whether t falls within the period, inclusive of both ends.
func (p DatePeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// CurrentPayPeriod calculates the two-week pay period containing the week
// after the most recent paycheck. Pay periods begin on a Monday and end on
// the Sunday one week after a paycheck.
func CurrentPayPeriod(lastPay time.Time) DatePeriod {
	end := nvtime.NextWeekday(lastPay.AddDate(0, 0, 7), time.Sunday)
	start := nvtime.NextWeekday(end.AddDate(0, 0, -14), time.Monday)
	return DatePeriod{Start: start, End: end}
}
