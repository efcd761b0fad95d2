package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/shiftlog/internal/model"
)

const sheetName = "Attendance Summary"

// XLSXWriter writes summary rows as a spreadsheet with a bold header row.
type XLSXWriter struct{}

// Ext implements TabularWriter.
func (w *XLSXWriter) Ext() string { return ".xlsx" }

// WriteToFile implements TabularWriter.
func (w *XLSXWriter) WriteToFile(path string, rows []model.Record) error {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close of the in-memory workbook.
			_ = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(tabularHeader))
	for i, h := range tabularHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}
	boldStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeaderCell, err := excelize.CoordinatesToCellName(len(tabularHeader), 1)
	if err != nil {
		return fmt.Errorf("failed to compute header range: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "A1", lastHeaderCell, boldStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, r := range rows {
		cells := []any{
			r.Date,
			r.EmpCode,
			r.FirstPunch,
			r.LastPunch,
			r.TotalPunches,
			r.WorkingHours,
			r.LateEntry,
			r.EarlyExit,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet %q: %w", path, err)
	}
	return nil
}
