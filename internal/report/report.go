// Package report renders a pay-period timesheet for humans: a terminal
// summary and an XLSX export.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/timesheet"
)

// Write prints the pay-period summary: per-date exceptions, the week
// totals, and the predicted clock-out time when currently clocked in.
func Write(w io.Writer, ts *timesheet.Timesheet) {
	fmt.Fprintf(w, "Pay period from %s to %s:\n",
		ts.PayPeriod.Start.Format("2006-01-02"),
		ts.PayPeriod.End.Format("2006-01-02"))

	exceptions := ts.ExceptionDates()
	if len(exceptions) > 0 {
		fmt.Fprintln(w, "  Exceptions:")
		dates := make([]string, 0, len(exceptions))
		for date := range exceptions {
			dates = append(dates, date)
		}
		sort.Strings(dates)
		for _, date := range dates {
			fmt.Fprintf(w, "    %s:\n", date)
			for _, flag := range exceptions[date] {
				fmt.Fprintf(w, "      %s\n", flag)
			}
		}
	}

	if ts.Hours.LastWeek > 0 {
		fmt.Fprintf(w, "  Last week: %s\n", nvtime.FormatHours(ts.Hours.LastWeek))
	}

	remaining := ts.Remaining()
	fmt.Fprintf(w, "  This week: %s (%s left)\n",
		nvtime.FormatHours(ts.Hours.ThisWeek), nvtime.FormatHours(remaining))

	clockIn, clockOut := ts.PredictClockOut(remaining)
	if clockOut != nil {
		fmt.Fprintf(w, "  After clocking in at %s, clock out by %s to hit %s\n",
			clockIn.Format("15:04"), clockOut.Format("15:04"),
			nvtime.FormatHours(ts.WeekHours))
	}
}

// entryRows flattens the timesheet into date-ordered rows for export.
func entryRows(ts *timesheet.Timesheet) []*timesheet.Entry {
	dates := make([]string, 0, len(ts.Entries))
	for date := range ts.Entries {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows []*timesheet.Entry
	for _, date := range dates {
		rows = append(rows, ts.Entries[date]...)
	}
	return rows
}

// exceptionSummary joins an entry's raised flags, stripped of the vendor
// key dressing, for a compact cell.
func exceptionSummary(e *timesheet.Entry) string {
	flags := e.Exceptions.Flagged()
	names := make([]string, 0, len(flags))
	for _, flag := range flags {
		name := strings.TrimPrefix(flag, "l")
		name = strings.TrimSuffix(name, "Exception")
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
