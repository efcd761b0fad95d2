// Package export serializes attendance reports to JSON, XLSX, and CSV.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// WriteJSON writes the report keyed by ISO date. Map keys marshal in sorted
// order, so the output is deterministic.
func WriteJSON(w io.Writer, report model.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the JSON export to the given path.
func WriteJSONFile(path string, report model.Report) error {
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
	return WriteJSON(f, report)
}
