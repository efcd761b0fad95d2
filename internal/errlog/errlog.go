// Package errlog accumulates per-line diagnostics for malformed input.
package errlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/verte-zerg/shiftlog/internal/model"
)

// Collector holds skipped-line diagnostics in the order recorded. Malformed
// input never aborts a run; it only ends up here.
type Collector struct {
	entries []model.ParseError
}

// New returns an empty collector.
func New() *Collector {
	return &Collector{}
}

// Record appends one diagnostic entry.
func (c *Collector) Record(e model.ParseError) {
	c.entries = append(c.entries, e)
}

// RecordAll appends entries preserving their order.
func (c *Collector) RecordAll(entries []model.ParseError) {
	c.entries = append(c.entries, entries...)
}

// Len reports the number of recorded entries.
func (c *Collector) Len() int {
	return len(c.entries)
}

// Entries returns the recorded diagnostics in order.
func (c *Collector) Entries() []model.ParseError {
	return c.entries
}

// Flush writes one report per line to the sink, in recorded order.
func (c *Collector) Flush(w io.Writer) error {
	for i := range c.entries {
		if _, err := fmt.Fprintln(w, c.entries[i].Error()); err != nil {
			return fmt.Errorf("failed to write diagnostics: %w", err)
		}
	}
	return nil
}

// FlushToFile writes the diagnostics file. The file is always written, even
// when no lines were skipped, so a completed run never silently drops errors.
func (c *Collector) FlushToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create diagnostics directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create diagnostics file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close after flush.
			_ = cerr
		}
	}()
	return c.Flush(f)
}
