package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/shiftlog/internal/model"
)

func sampleReport() model.Report {
	return model.Report{
		"2025-09-24": {
			{
				EmpCode:      "10023",
				FirstPunch:   "09:05",
				LastPunch:    "18:10",
				TotalPunches: 2,
				WorkingHours: "09:05",
				LateEntry:    0,
				EarlyExit:    0,
			},
		},
	}
}

func sampleRows() []model.Record {
	return []model.Record{
		{Date: "2025-09-24", DailySummary: sampleReport()["2025-09-24"][0]},
	}
}

func TestWriteJSONSchema(t *testing.T) {
	var b strings.Builder
	if err := WriteJSON(&b, sampleReport()); err != nil {
		t.Fatalf("write json: %v", err)
	}

	var decoded map[string][]map[string]any
	if err := json.Unmarshal([]byte(b.String()), &decoded); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	records, ok := decoded["2025-09-24"]
	if !ok || len(records) != 1 {
		t.Fatalf("expected one record under the date key, got %v", decoded)
	}
	rec := records[0]
	for _, field := range []string{"emp_code", "first_punch", "last_punch", "total_punches", "working_hours", "late_entry", "early_exit"} {
		if _, ok := rec[field]; !ok {
			t.Fatalf("missing field %q in %v", field, rec)
		}
	}
	if rec["late_entry"] != float64(0) {
		t.Fatalf("flags must be numeric 0/1, got %v", rec["late_entry"])
	}
}

func TestJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")
	report := sampleReport()
	if err := WriteJSONFile(path, report); err != nil {
		t.Fatalf("write json file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read json file: %v", err)
	}
	var loaded model.Report
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(loaded, report) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", loaded, report)
	}
}

func TestCSVWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.csv")
	w := &CSVWriter{}
	if err := w.WriteToFile(path, sampleRows()); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	wantHeader := []string{"Date", "Emp Code", "First Punch", "Last Punch", "Total Punches", "Working Hours", "Late Entry", "Early Exit"}
	if !reflect.DeepEqual(rows[0], wantHeader) {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	want := []string{"2025-09-24", "10023", "09:05", "18:10", "2", "09:05", "0", "0"}
	if !reflect.DeepEqual(rows[1], want) {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestXLSXWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.xlsx")
	w := &XLSXWriter{}
	if err := w.WriteToFile(path, sampleRows()); err != nil {
		t.Fatalf("write xlsx: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows("Attendance Summary")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one row, got %d rows", len(rows))
	}
	if rows[1][0] != "2025-09-24" || rows[1][1] != "10023" {
		t.Fatalf("unexpected row: %v", rows[1])
	}
}

func TestWriteTabularFormatSelection(t *testing.T) {
	dir := t.TempDir()
	path, fellBack, err := WriteTabular(filepath.Join(dir, "summary.xlsx"), FormatCSV, sampleRows())
	if err != nil {
		t.Fatalf("write tabular: %v", err)
	}
	if fellBack {
		t.Fatal("direct csv write must not report a fallback")
	}
	if !strings.HasSuffix(path, ".csv") {
		t.Fatalf("expected csv path, got %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file missing: %v", err)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(" XLSX "); err != nil || f != FormatXLSX {
		t.Fatalf("unexpected result: %v %v", f, err)
	}
	if _, err := ParseFormat("ods"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
