// Package search loads exported attendance summaries and filters them.
package search

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// LoadJSON reads a JSON export and flattens it to records sorted by date,
// then employee code.
func LoadJSON(path string) ([]model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export: %w", err)
	}
	var report model.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse export %q: %w", path, err)
	}

	var records []model.Record
	for date, summaries := range report {
		for _, s := range summaries {
			records = append(records, model.Record{Date: date, DailySummary: s})
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Date == records[j].Date {
			return records[i].EmpCode < records[j].EmpCode
		}
		return records[i].Date < records[j].Date
	})
	return records, nil
}

// Filter returns the records matching every provided filter exactly. Empty
// query fields match everything.
func Filter(records []model.Record, q model.SearchQuery) []model.Record {
	if q.EmpCode == "" && q.Date == "" {
		return records
	}
	var out []model.Record
	for _, r := range records {
		if q.EmpCode != "" && r.EmpCode != q.EmpCode {
			continue
		}
		if q.Date != "" && r.Date != q.Date {
			continue
		}
		out = append(out, r)
	}
	return out
}
