package summary_test

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/shiftlog/internal/clock"
	"github.com/verte-zerg/shiftlog/internal/export"
	"github.com/verte-zerg/shiftlog/internal/model"
	"github.com/verte-zerg/shiftlog/internal/punch"
	"github.com/verte-zerg/shiftlog/internal/search"
	"github.com/verte-zerg/shiftlog/internal/summary"
)

// Epochs for employee 10023 on 2025-09-24 at +06:00: 09:05 and 18:10 local.
const (
	epoch0905 = 1758683100
	epoch1810 = 1758715800
)

func TestPipeline(t *testing.T) {
	policy, err := clock.NewPolicy("09:00", "18:00", "09:30", "17:00", "+06:00")
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}

	input := strings.Join([]string{
		"10023 Ayesha Rahman 1758715800 gate-2",
		"10023 Ayesha Rahman 1758683100 gate-1",
		"10023 Ayesha Rahman", // four fields
		"10024 Biju Das notanumber gate-1",
		"",
	}, "\n")
	punches, skipped, err := punch.ReadLog(strings.NewReader(input), policy.TZOffset)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(skipped) != 2 {
		t.Fatalf("expected exactly one diagnostic per malformed line, got %d", len(skipped))
	}

	report := summary.BuildReport(punches, policy)
	summaries := report["2025-09-24"]
	if len(summaries) != 1 {
		t.Fatalf("malformed lines must not contribute summaries: %+v", report)
	}
	want := model.DailySummary{
		EmpCode:      "10023",
		FirstPunch:   "09:05",
		LastPunch:    "18:10",
		TotalPunches: 2,
		WorkingHours: "09:05",
		LateEntry:    0, // 09:05 is before the 09:30 limit
		EarlyExit:    0,
	}
	if summaries[0] != want {
		t.Fatalf("unexpected summary:\n got %+v\nwant %+v", summaries[0], want)
	}

	// Export then search with no filters returns exactly the report contents.
	path := filepath.Join(t.TempDir(), "summary.json")
	if err := export.WriteJSONFile(path, report); err != nil {
		t.Fatalf("write export: %v", err)
	}
	records, err := search.LoadJSON(path)
	if err != nil {
		t.Fatalf("load export: %v", err)
	}
	wantRecords := []model.Record{{Date: "2025-09-24", DailySummary: want}}
	if !reflect.DeepEqual(search.Filter(records, model.SearchQuery{}), wantRecords) {
		t.Fatalf("export round trip mismatch: %+v", records)
	}
}

func TestPipelineEpochs(t *testing.T) {
	// Anchor the fixture epochs so the pipeline test stays honest.
	for _, tc := range []struct {
		epoch int64
		local string
	}{
		{epoch0905, "2025-09-24 09:05"},
		{epoch1810, "2025-09-24 18:10"},
	} {
		got := time.Unix(tc.epoch, 0).UTC().Add(6 * time.Hour).Format("2006-01-02 15:04")
		if got != tc.local {
			t.Fatalf("epoch %d: got %s, want %s", tc.epoch, got, tc.local)
		}
	}
}
