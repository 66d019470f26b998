package timesheet

import (
	"time"

	"github.com/agmlego/novatime/internal/raw"
)

// EntryException is the vendor's anomaly flags for one timesheet line:
// tardiness, missing punches, unauthorized overtime, meal-break rule
// violations, and the minute measurements behind them. Most flags are
// innocuous most of the time.
type EntryException struct {
	Overtime         bool
	Tardy            bool
	EarlyOut         bool
	EarlyIn          bool
	LateOut          bool
	MissingPunch     bool
	MealBreakPremium bool
	UnderPay         bool
	OverPay          bool
	TardyGrace       bool
	EarlyOutGrace    bool
	UnpaidBreak      bool
	AutoDeductMeal   bool
	AutoMealWaived   bool
	UnconfirmedPunch bool
	UnconfirmedIn    bool
	UnconfirmedOut   bool
	UnconfirmedInP   bool
	UnconfirmedOutP  bool
	LateOutToMeal    bool
	UnauthorizedOT   bool
	LastChangeDay    bool

	MealDesc  string
	BreakDesc string

	LongMeal        time.Duration
	TardyMinutes    time.Duration
	EarlyOutMinutes time.Duration
	AutoMealMinutes time.Duration
	MealValMinutes  time.Duration
}

// exceptionFlagKeys maps each boolean flag to its vendor key, in the order
// they appear in captured payloads.
var exceptionFlagKeys = []struct {
	key string
	get func(*EntryException) *bool
}{
	{"lOvertimeException", func(e *EntryException) *bool { return &e.Overtime }},
	{"lTardyException", func(e *EntryException) *bool { return &e.Tardy }},
	{"lEarlyOutException", func(e *EntryException) *bool { return &e.EarlyOut }},
	{"lEarlyInException", func(e *EntryException) *bool { return &e.EarlyIn }},
	{"lLateOutException", func(e *EntryException) *bool { return &e.LateOut }},
	{"lMissingPunchException", func(e *EntryException) *bool { return &e.MissingPunch }},
	{"lMealBreakPremiumException", func(e *EntryException) *bool { return &e.MealBreakPremium }},
	{"lUnderPayException", func(e *EntryException) *bool { return &e.UnderPay }},
	{"lOverPayException", func(e *EntryException) *bool { return &e.OverPay }},
	{"lTardyGraceException", func(e *EntryException) *bool { return &e.TardyGrace }},
	{"lEarlyOutGraceException", func(e *EntryException) *bool { return &e.EarlyOutGrace }},
	{"lUnpaidBreakException", func(e *EntryException) *bool { return &e.UnpaidBreak }},
	{"lAutoDeductMealException", func(e *EntryException) *bool { return &e.AutoDeductMeal }},
	{"lAutoMealWaivedException", func(e *EntryException) *bool { return &e.AutoMealWaived }},
	{"lUnconfirmedPunchException", func(e *EntryException) *bool { return &e.UnconfirmedPunch }},
	{"lUnconfirmedInException", func(e *EntryException) *bool { return &e.UnconfirmedIn }},
	{"lUnconfirmedOutException", func(e *EntryException) *bool { return &e.UnconfirmedOut }},
	{"lUnconfirmedInPunch", func(e *EntryException) *bool { return &e.UnconfirmedInP }},
	{"lUnconfirmedOutPunch", func(e *EntryException) *bool { return &e.UnconfirmedOutP }},
	{"lLateOutToMealException", func(e *EntryException) *bool { return &e.LateOutToMeal }},
	{"lUnauthorizedOT", func(e *EntryException) *bool { return &e.UnauthorizedOT }},
	{"lHasLstChgDay", func(e *EntryException) *bool { return &e.LastChangeDay }},
}

func parseExceptions(r raw.Record) (EntryException, error) {
	var e EntryException
	var err error
	for _, flag := range exceptionFlagKeys {
		if *flag.get(&e), err = r.Bool(flag.key); err != nil {
			return e, err
		}
	}
	if e.MealDesc, err = r.Str("cMealException"); err != nil {
		return e, err
	}
	if e.BreakDesc, err = r.Str("cBreakException"); err != nil {
		return e, err
	}
	if e.LongMeal, err = r.HoursDuration("nLongMeal"); err != nil {
		return e, err
	}
	if e.TardyMinutes, err = r.MinutesDuration("nTardyMinutes"); err != nil {
		return e, err
	}
	if e.EarlyOutMinutes, err = r.MinutesDuration("nEarlyOutMinutes"); err != nil {
		return e, err
	}
	if e.AutoMealMinutes, err = r.MinutesDuration("nAutoMealMinutes"); err != nil {
		return e, err
	}
	if e.MealValMinutes, err = r.MinutesDuration("nMealValMinutes"); err != nil {
		return e, err
	}
	return e, nil
}

func (e *EntryException) writeTo(r raw.Record) {
	for _, flag := range exceptionFlagKeys {
		r[flag.key] = *flag.get(e)
	}
	r["cMealException"] = e.MealDesc
	r["cBreakException"] = e.BreakDesc
	r["nLongMeal"] = raw.Hours(e.LongMeal)
	r["nTardyMinutes"] = raw.Minutes(e.TardyMinutes)
	r["nEarlyOutMinutes"] = raw.Minutes(e.EarlyOutMinutes)
	r["nAutoMealMinutes"] = raw.Minutes(e.AutoMealMinutes)
	r["nMealValMinutes"] = raw.Minutes(e.MealValMinutes)
}

// Flagged returns the vendor keys of every raised boolean flag, for the
// per-date exception report.
func (e *EntryException) Flagged() []string {
	var keys []string
	for _, flag := range exceptionFlagKeys {
		if *flag.get(e) {
			keys = append(keys, flag.key)
		}
	}
	return keys
}

// Any reports whether any exception flag is raised.
func (e *EntryException) Any() bool {
	return len(e.Flagged()) > 0
}
