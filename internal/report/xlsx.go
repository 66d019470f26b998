package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/agmlego/novatime/internal/nvtime"
	"github.com/agmlego/novatime/internal/timesheet"
)

const sheetName = "Timesheet"

var xlsxHeader = []string{"Date", "Pay Code", "In", "Out", "Work Hours", "Daily Total", "Exceptions"}

// ExportXLSX writes the pay period as a spreadsheet: one row per entry,
// a totals block underneath.
func ExportXLSX(path string, ts *timesheet.Timesheet) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for col, title := range xlsxHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, bold); err != nil {
			return err
		}
	}

	row := 2
	for _, entry := range entryRows(ts) {
		out := ""
		if entry.Out != nil {
			out = entry.Out.Time.Format("15:04")
		}
		values := []any{
			entry.PunchDate.Format("2006-01-02"),
			entry.PayCode.String(),
			entry.In.Time.Format("15:04"),
			out,
			nvtime.FormatHours(entry.WorkHours),
			nvtime.FormatHours(entry.DailyTotalHours),
			exceptionSummary(entry),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
		row++
	}

	totals := []struct {
		label string
		value string
	}{
		{"Last week", nvtime.FormatHours(ts.Hours.LastWeek)},
		{"This week", nvtime.FormatHours(ts.Hours.ThisWeek)},
		{"Total", nvtime.FormatHours(ts.Hours.Total)},
	}
	row++
	for _, total := range totals {
		labelCell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		valueCell, err := excelize.CoordinatesToCellName(2, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, labelCell, total.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, labelCell, labelCell, bold); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, valueCell, total.value); err != nil {
			return err
		}
		row++
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
