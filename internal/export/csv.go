package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// CSVWriter writes summary rows as plain CSV.
type CSVWriter struct{}

// Ext implements TabularWriter.
func (w *CSVWriter) Ext() string { return ".csv" }

// WriteToFile implements TabularWriter.
func (w *CSVWriter) WriteToFile(path string, rows []model.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after write.
			_ = cerr
		}
	}()
	return w.Write(f, rows)
}

// Write writes the header and rows in CSV format to the given writer.
func (w *CSVWriter) Write(out io.Writer, rows []model.Record) error {
	writer := csv.NewWriter(out)

	if err := writer.Write(tabularHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := writer.Write(recordRow(r)); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}
