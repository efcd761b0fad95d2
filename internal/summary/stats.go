package summary

import (
	"fmt"
	"io"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// Stats computes run totals over a finished report.
func Stats(report model.Report, skipped int) model.RunStats {
	stats := model.RunStats{Days: len(report), Skipped: skipped}
	employees := make(map[string]struct{})
	for _, summaries := range report {
		for _, s := range summaries {
			employees[s.EmpCode] = struct{}{}
			stats.Records++
			stats.LateEntries += s.LateEntry
			stats.EarlyExits += s.EarlyExit
		}
	}
	stats.Employees = len(employees)
	return stats
}

// RenderStats prints run totals for the operator.
func RenderStats(w io.Writer, stats model.RunStats) error {
	if _, err := fmt.Fprintln(w, "Processing statistics"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Employees: %d\n", stats.Employees); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Days: %d\n", stats.Days); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Attendance records: %d\n", stats.Records); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Late entries: %d\n", stats.LateEntries); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Early exits: %d\n", stats.EarlyExits); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Skipped lines: %d\n", stats.Skipped); err != nil {
		return err
	}
	return nil
}
