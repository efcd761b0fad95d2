package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// Format selects a tabular output flavor.
type Format string

// Supported tabular formats. XLSX is the default; CSV is the fallback.
const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// tabularHeader is the fixed column order of the tabular exports.
var tabularHeader = []string{
	"Date", "Emp Code", "First Punch", "Last Punch",
	"Total Punches", "Working Hours", "Late Entry", "Early Exit",
}

// TabularWriter writes flattened summary rows to a file.
type TabularWriter interface {
	// WriteToFile writes a header row followed by one row per record.
	WriteToFile(path string, rows []model.Record) error
	// Ext returns the file extension including the dot.
	Ext() string
}

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format %q (xlsx or csv)", s)
	}
}

// NewTabular returns the writer for a format.
func NewTabular(f Format) (TabularWriter, error) {
	switch f {
	case FormatXLSX:
		return &XLSXWriter{}, nil
	case FormatCSV:
		return &CSVWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", f)
	}
}

// WithExt replaces the extension of path with the writer's own.
func WithExt(path string, w TabularWriter) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + w.Ext()
}

func recordRow(r model.Record) []string {
	return []string{
		r.Date,
		r.EmpCode,
		r.FirstPunch,
		r.LastPunch,
		fmt.Sprintf("%d", r.TotalPunches),
		r.WorkingHours,
		fmt.Sprintf("%d", r.LateEntry),
		fmt.Sprintf("%d", r.EarlyExit),
	}
}
