package searchui

import (
	"testing"

	"github.com/verte-zerg/shiftlog/internal/model"
)

func testRecords() []model.Record {
	return []model.Record{
		{Date: "2025-09-24", DailySummary: model.DailySummary{EmpCode: "10023", FirstPunch: "09:05", LastPunch: "18:10", TotalPunches: 2, WorkingHours: "09:05"}},
		{Date: "2025-09-25", DailySummary: model.DailySummary{EmpCode: "10024", FirstPunch: "09:45", LastPunch: "16:30", TotalPunches: 2, WorkingHours: "06:45", LateEntry: 1, EarlyExit: 1}},
	}
}

func TestNewModelAppliesInitialQuery(t *testing.T) {
	m := NewModel(testRecords(), model.SearchQuery{EmpCode: "10024"})
	if len(m.matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(m.matches))
	}
	if m.matches[0].Date != "2025-09-25" {
		t.Fatalf("unexpected match: %+v", m.matches[0])
	}
}

func TestParseFilterValidatesDate(t *testing.T) {
	m := NewModel(testRecords(), model.SearchQuery{})
	m.filterInputs[1].SetValue("24-09-2025")
	if _, err := m.parseFilter(); err == nil {
		t.Fatal("expected error for malformed date")
	}
	m.filterInputs[1].SetValue("2025-09-24")
	q, err := m.parseFilter()
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if q.Date != "2025-09-24" {
		t.Fatalf("unexpected query: %+v", q)
	}
}
