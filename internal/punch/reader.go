package punch

import (
	"bufio"
	"io"
	"os"
	"strings"
	"time"

	"github.com/verte-zerg/shiftlog/internal/clock"
	"github.com/verte-zerg/shiftlog/internal/model"
)

// ReadLog scans a punch log in one pass, returning the valid punches with
// their local date and minute filled in, plus the skipped lines in input
// order. Blank and whitespace-only lines are skipped silently. Only a read
// failure is an error.
func ReadLog(r io.Reader, offset time.Duration) ([]model.Punch, []model.ParseError, error) {
	var punches []model.Punch
	var skipped []model.ParseError

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		raw := scanner.Text()
		if strings.TrimSpace(raw) == "" {
			continue
		}
		p, perr := Parse(raw)
		if perr != nil {
			perr.Line = lineNum
			skipped = append(skipped, *perr)
			continue
		}
		p.Date, p.Minute = clock.Normalize(p.Timestamp, offset)
		punches = append(punches, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return punches, skipped, nil
}

// ReadLogFile opens and scans a punch log file. A missing or unreadable file
// is fatal for the run.
func ReadLogFile(path string, offset time.Duration) ([]model.Punch, []model.ParseError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only input.
			_ = cerr
		}
	}()
	return ReadLog(file, offset)
}
