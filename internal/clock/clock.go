// Package clock converts punch timestamps to local wall-clock values under a
// fixed UTC offset.
package clock

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// Normalize converts epoch seconds to a local ISO date and minute-of-day
// under the given UTC offset. Seconds truncate to the minute. The result is
// independent of the host timezone.
func Normalize(epoch int64, offset time.Duration) (string, model.MinuteOfDay) {
	t := time.Unix(epoch, 0).UTC().Add(offset)
	minute := model.MinuteOfDay(t.Hour()*60 + t.Minute())
	return t.Format("2006-01-02"), minute
}

// ParseMinute parses a HH:MM time-of-day value.
func ParseMinute(s string) (model.MinuteOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil || hours < 0 || hours > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	return model.MinuteOfDay(hours*60 + minutes), nil
}

// ParseOffset parses a fixed UTC offset of the form +HH:MM or -HH:MM.
func ParseOffset(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("timezone offset is empty")
	}
	sign := time.Duration(1)
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		sign = -1
		s = s[1:]
	}
	minute, err := ParseMinute(s)
	if err != nil {
		return 0, fmt.Errorf("invalid timezone offset: %w", err)
	}
	return sign * time.Duration(minute) * time.Minute, nil
}

// FormatOffset renders a fixed UTC offset as +HH:MM or -HH:MM.
func FormatOffset(offset time.Duration) string {
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	total := int(offset / time.Minute)
	return fmt.Sprintf("%s%02d:%02d", sign, total/60, total%60)
}

// NewPolicy builds and validates a shift policy from HH:MM threshold strings
// and a UTC offset string. Any invalid value is fatal for the run.
func NewPolicy(shiftStart, shiftEnd, lateLimit, earlyLimit, tzOffset string) (model.Policy, error) {
	var p model.Policy
	var err error
	if p.ShiftStart, err = ParseMinute(shiftStart); err != nil {
		return model.Policy{}, fmt.Errorf("invalid shift-start: %w", err)
	}
	if p.ShiftEnd, err = ParseMinute(shiftEnd); err != nil {
		return model.Policy{}, fmt.Errorf("invalid shift-end: %w", err)
	}
	if p.LateEntryLimit, err = ParseMinute(lateLimit); err != nil {
		return model.Policy{}, fmt.Errorf("invalid late-entry-limit: %w", err)
	}
	if p.EarlyExitLimit, err = ParseMinute(earlyLimit); err != nil {
		return model.Policy{}, fmt.Errorf("invalid early-exit-limit: %w", err)
	}
	if p.TZOffset, err = ParseOffset(tzOffset); err != nil {
		return model.Policy{}, err
	}
	if p.ShiftEnd <= p.ShiftStart {
		return model.Policy{}, fmt.Errorf("shift-end %s must be after shift-start %s", p.ShiftEnd, p.ShiftStart)
	}
	return p, nil
}
