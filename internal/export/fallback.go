package export

import (
	"fmt"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// WriteTabular writes rows in the requested format and returns the path
// actually written. A failed spreadsheet write falls back to CSV beside the
// requested path; fellBack reports that so the caller can say so.
func WriteTabular(path string, format Format, rows []model.Record) (finalPath string, fellBack bool, err error) {
	writer, err := NewTabular(format)
	if err != nil {
		return "", false, err
	}
	finalPath = WithExt(path, writer)
	if err := writer.WriteToFile(finalPath, rows); err != nil {
		if format != FormatXLSX {
			return "", false, err
		}
		csvWriter := &CSVWriter{}
		csvPath := WithExt(path, csvWriter)
		if cerr := csvWriter.WriteToFile(csvPath, rows); cerr != nil {
			return "", false, fmt.Errorf("xlsx write failed (%v); csv fallback failed: %w", err, cerr)
		}
		return csvPath, true, nil
	}
	return finalPath, false, nil
}
