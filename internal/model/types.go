// Package model defines shared data structures.
package model

import (
	"fmt"
	"time"
)

// MinuteOfDay counts minutes since local midnight.
type MinuteOfDay int

// String formats the minute as HH:MM.
func (m MinuteOfDay) String() string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Punch is one validated clock event after timestamp normalization.
type Punch struct {
	EmpCode   string
	FirstName string
	LastName  string
	Timestamp int64
	Device    string
	Date      string
	Minute    MinuteOfDay
}

// ParseReason classifies why a raw log line was rejected.
type ParseReason int

// Rejection reasons for raw log lines.
const (
	ReasonTooFewFields ParseReason = iota
	ReasonTooManyFields
	ReasonBadTimestamp
	ReasonMalformed
)

// String returns the diagnostic label for the reason.
func (r ParseReason) String() string {
	switch r {
	case ReasonTooFewFields:
		return "wrong field count (too few)"
	case ReasonTooManyFields:
		return "wrong field count (too many)"
	case ReasonBadTimestamp:
		return "unparseable timestamp"
	default:
		return "malformed line"
	}
}

// ParseError records one skipped log line. Entries are immutable once recorded.
type ParseError struct {
	Line   int
	Raw    string
	Reason ParseReason
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s -> %s", e.Line, e.Reason, e.Raw)
}

// DailySummary is one employee's attendance for one date. Field names and the
// 0/1 flag encoding are fixed by the JSON export schema.
type DailySummary struct {
	EmpCode      string `json:"emp_code"`
	FirstPunch   string `json:"first_punch"`
	LastPunch    string `json:"last_punch"`
	TotalPunches int    `json:"total_punches"`
	WorkingHours string `json:"working_hours"`
	LateEntry    int    `json:"late_entry"`
	EarlyExit    int    `json:"early_exit"`
}

// Report maps ISO dates to that day's summaries, sorted by employee code.
// Built once per run and read-only afterward.
type Report map[string][]DailySummary

// Record is a DailySummary flattened with its date, the row shape used by
// tabular export, search, and the history store.
type Record struct {
	Date string `json:"date"`
	DailySummary
}

// Policy holds the shift thresholds and timezone offset for a run.
type Policy struct {
	ShiftStart     MinuteOfDay
	ShiftEnd       MinuteOfDay
	LateEntryLimit MinuteOfDay
	EarlyExitLimit MinuteOfDay
	TZOffset       time.Duration
}

// SearchQuery filters summary records. Empty fields match everything.
type SearchQuery struct {
	EmpCode string
	Date    string
}

// RunStats summarizes one processing run for operator output.
type RunStats struct {
	Employees   int
	Days        int
	Records     int
	LateEntries int
	EarlyExits  int
	Skipped     int
}

// RunInfo describes one stored processing run.
type RunInfo struct {
	RunID       int64
	ProcessedAt time.Time
	Source      string
	Records     int
	Skipped     int
}
