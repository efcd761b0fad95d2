// Package punch parses raw time-clock log lines.
package punch

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// fieldCount is the fixed shape of a log line:
// emp_code first_name last_name timestamp device
const fieldCount = 5

// Parse splits one non-blank log line into a Punch. On a malformed line it
// returns a ParseError instead; it never does both and has no side effects.
// The returned error carries no line number — the caller owns that.
func Parse(raw string) (model.Punch, *model.ParseError) {
	fields := strings.Fields(raw)
	if len(fields) < fieldCount {
		return model.Punch{}, &model.ParseError{Raw: raw, Reason: model.ReasonTooFewFields}
	}
	if len(fields) > fieldCount {
		return model.Punch{}, &model.ParseError{Raw: raw, Reason: model.ReasonTooManyFields}
	}
	ts, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil || ts < 0 {
		return model.Punch{}, &model.ParseError{Raw: raw, Reason: model.ReasonBadTimestamp}
	}
	return model.Punch{
		EmpCode:   fields[0],
		FirstName: fields[1],
		LastName:  fields[2],
		Timestamp: ts,
		Device:    fields[4],
	}, nil
}
