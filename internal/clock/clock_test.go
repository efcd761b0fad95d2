package clock

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	// 2025-09-25 07:45:40 UTC, 13:45 at +06:00.
	offset := 6 * time.Hour
	date, minute := Normalize(1758786340, offset)
	if date != "2025-09-25" {
		t.Fatalf("unexpected date: %s", date)
	}
	if minute.String() != "13:45" {
		t.Fatalf("unexpected minute: %s", minute)
	}
}

func TestNormalizeNegativeOffset(t *testing.T) {
	// Midnight UTC rolls back to the previous date at -05:00.
	date, minute := Normalize(86400, -5*time.Hour)
	if date != "1970-01-01" {
		t.Fatalf("unexpected date: %s", date)
	}
	if minute.String() != "19:00" {
		t.Fatalf("unexpected minute: %s", minute)
	}
}

func TestNormalizeTruncatesSeconds(t *testing.T) {
	_, minute := Normalize(59, 0)
	if minute != 0 {
		t.Fatalf("expected seconds to truncate, got %s", minute)
	}
}

func TestParseMinute(t *testing.T) {
	m, err := ParseMinute("09:30")
	if err != nil {
		t.Fatalf("parse minute: %v", err)
	}
	if m != 9*60+30 {
		t.Fatalf("unexpected minute value: %d", m)
	}
	for _, bad := range []string{"", "9", "24:00", "12:60", "ab:cd"} {
		if _, err := ParseMinute(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestParseOffset(t *testing.T) {
	off, err := ParseOffset("+06:00")
	if err != nil {
		t.Fatalf("parse offset: %v", err)
	}
	if off != 6*time.Hour {
		t.Fatalf("unexpected offset: %s", off)
	}
	off, err = ParseOffset("-05:30")
	if err != nil {
		t.Fatalf("parse offset: %v", err)
	}
	if off != -(5*time.Hour + 30*time.Minute) {
		t.Fatalf("unexpected offset: %s", off)
	}
	if FormatOffset(off) != "-05:30" {
		t.Fatalf("unexpected formatted offset: %s", FormatOffset(off))
	}
	if _, err := ParseOffset(""); err == nil {
		t.Fatal("expected error for empty offset")
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy("09:00", "18:00", "09:30", "17:00", "+06:00")
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	if p.LateEntryLimit.String() != "09:30" || p.EarlyExitLimit.String() != "17:00" {
		t.Fatalf("unexpected limits: %+v", p)
	}
	if p.TZOffset != 6*time.Hour {
		t.Fatalf("unexpected offset: %s", p.TZOffset)
	}
}

func TestNewPolicyEndBeforeStart(t *testing.T) {
	if _, err := NewPolicy("18:00", "09:00", "09:30", "17:00", "+06:00"); err == nil {
		t.Fatal("expected error when shift end precedes start")
	}
}
