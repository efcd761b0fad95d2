// Package summary folds punches into per-employee daily attendance records.
package summary

import (
	"sort"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// GroupKey identifies one employee-day bucket.
type GroupKey struct {
	EmpCode string
	Date    string
}

// Aggregate buckets punches by employee and local date in a single pass over
// unordered input, then sorts each bucket's minutes ascending. Duplicate
// minutes are retained; they count toward the punch total. The result is the
// same for any permutation of the input.
func Aggregate(punches []model.Punch) map[GroupKey][]model.MinuteOfDay {
	groups := make(map[GroupKey][]model.MinuteOfDay)
	for _, p := range punches {
		key := GroupKey{EmpCode: p.EmpCode, Date: p.Date}
		groups[key] = append(groups[key], p.Minute)
	}
	for _, minutes := range groups {
		sort.SliceStable(minutes, func(i, j int) bool { return minutes[i] < minutes[j] })
	}
	return groups
}

// Evaluate derives one DailySummary from a group's sorted minutes. It is a
// pure function of its inputs and must be called with at least one minute.
// Flags compare strictly against the policy limits: a first punch exactly at
// the late-entry limit is not late, a last punch exactly at the early-exit
// limit is not early.
func Evaluate(key GroupKey, minutes []model.MinuteOfDay, policy model.Policy) model.DailySummary {
	first := minutes[0]
	last := minutes[len(minutes)-1]

	worked := last - first
	if worked < 0 {
		worked = 0
	}

	s := model.DailySummary{
		EmpCode:      key.EmpCode,
		FirstPunch:   first.String(),
		LastPunch:    last.String(),
		TotalPunches: len(minutes),
		WorkingHours: worked.String(),
	}
	if first > policy.LateEntryLimit {
		s.LateEntry = 1
	}
	if last < policy.EarlyExitLimit {
		s.EarlyExit = 1
	}
	return s
}

// BuildReport runs the full aggregate-then-evaluate pipeline and orders each
// date's summaries by employee code. The report is read-only afterward.
func BuildReport(punches []model.Punch, policy model.Policy) model.Report {
	report := make(model.Report)
	for key, minutes := range Aggregate(punches) {
		report[key.Date] = append(report[key.Date], Evaluate(key, minutes, policy))
	}
	for _, summaries := range report {
		sort.Slice(summaries, func(i, j int) bool { return summaries[i].EmpCode < summaries[j].EmpCode })
	}
	return report
}

// Flatten converts a report into rows sorted by date, then employee code —
// the order used by tabular export and plain search output.
func Flatten(report model.Report) []model.Record {
	dates := make([]string, 0, len(report))
	for date := range report {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	var rows []model.Record
	for _, date := range dates {
		for _, s := range report[date] {
			rows = append(rows, model.Record{Date: date, DailySummary: s})
		}
	}
	return rows
}
