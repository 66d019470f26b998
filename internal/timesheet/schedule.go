package timesheet

import (
	"time"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/raw"
)

// Schedule is the scheduled-shift slice of a timesheet line: expected
// hours, the shift expression strings, and the optional work period.
type Schedule struct {
	Hours               time.Duration
	Schedule            string
	ShiftExpression     string
	InOutExpression     string
	GroupingString      *string
	ShowPayCode         bool
	Premium             bool
	PremiumUserOverride bool
	WorkPeriod          *DatePeriod
}

func parseSchedule(r raw.Record) (Schedule, error) {
	var s Schedule
	var err error
	if s.Hours, err = r.HoursDuration("nScheduleHours"); err != nil {
		return s, err
	}
	if s.Schedule, err = r.Str("cSchedule"); err != nil {
		return s, err
	}
	if s.ShiftExpression, err = r.Str("cShiftExpression"); err != nil {
		return s, err
	}
	if s.InOutExpression, err = r.Str("cInOutExpression"); err != nil {
		return s, err
	}
	if s.GroupingString, err = r.NullStr("SchGroupingString"); err != nil {
		return s, err
	}
	if s.ShowPayCode, err = r.Bool("lShowSchedulePayCode"); err != nil {
		return s, err
	}
	if s.Premium, err = r.Bool("isSchedulePremium"); err != nil {
		return s, err
	}
	if s.PremiumUserOverride, err = r.Bool("isSchedulePremiumUserOverride"); err != nil {
		return s, err
	}

	start, err := nullPunch(r, "dWorkPeriodStartDate")
	if err != nil {
		return s, err
	}
	end, err := nullPunch(r, "dWorkPeriodEndDate")
	if err != nil {
		return s, err
	}
	if start != nil && end != nil {
		period, err := NewDatePeriod(*start, *end)
		if err != nil {
			return s, err
		}
		s.WorkPeriod = &period
	}
	return s, nil
}

func (s Schedule) writeTo(r raw.Record) {
	r["nScheduleHours"] = raw.Hours(s.Hours)
	r["cSchedule"] = s.Schedule
	r["cShiftExpression"] = s.ShiftExpression
	r["cInOutExpression"] = s.InOutExpression
	r["SchGroupingString"] = nullStr(s.GroupingString)
	r["lShowSchedulePayCode"] = s.ShowPayCode
	r["isSchedulePremium"] = s.Premium
	r["isSchedulePremiumUserOverride"] = s.PremiumUserOverride
	if s.WorkPeriod != nil {
		r["dWorkPeriodStartDate"] = nvtime.FormatPunch(s.WorkPeriod.Start)
		r["dWorkPeriodEndDate"] = nvtime.FormatPunch(s.WorkPeriod.End)
	} else {
		r["dWorkPeriodStartDate"] = nil
		r["dWorkPeriodEndDate"] = nil
	}
}

// nullPunch reads a nullable punch-format timestamp field.
func nullPunch(r raw.Record, key string) (*time.Time, error) {
	s, err := r.NullStr(key)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	t, err := nvtime.ParsePunch(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
