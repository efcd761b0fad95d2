// Package store handles SQLite persistence of processing runs.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/shiftlog/internal/model"
	"github.com/verte-zerg/shiftlog/internal/summary"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			processed_at TEXT NOT NULL,
			source TEXT NOT NULL,
			records INTEGER NOT NULL,
			skipped INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS summaries (
			run_id INTEGER NOT NULL,
			date TEXT NOT NULL,
			emp_code TEXT NOT NULL,
			first_punch TEXT NOT NULL,
			last_punch TEXT NOT NULL,
			total_punches INTEGER NOT NULL,
			working_hours TEXT NOT NULL,
			late_entry INTEGER NOT NULL,
			early_exit INTEGER NOT NULL,
			PRIMARY KEY (run_id, date, emp_code)
		);`,
		`CREATE TABLE IF NOT EXISTS skipped_lines (
			run_id INTEGER NOT NULL,
			line INTEGER NOT NULL,
			reason TEXT NOT NULL,
			raw TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_date ON summaries(date);`,
		`CREATE INDEX IF NOT EXISTS idx_summaries_emp_code ON summaries(emp_code);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores one completed processing run with its summaries and
// skipped lines.
func (s *Store) InsertRun(ctx context.Context, source string, processedAt time.Time, report model.Report, skipped []model.ParseError) (int64, error) {
	rows := summary.Flatten(report)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (processed_at, source, records, skipped) VALUES (?, ?, ?, ?)`,
		processedAt.Format(time.RFC3339Nano),
		source,
		len(rows),
		len(skipped),
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO summaries (run_id, date, emp_code, first_punch, last_punch, total_punches, working_hours, late_entry, early_exit)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, r := range rows {
			if _, err := stmt.ExecContext(ctx, id, r.Date, r.EmpCode, r.FirstPunch, r.LastPunch, r.TotalPunches, r.WorkingHours, r.LateEntry, r.EarlyExit); err != nil {
				return 0, err
			}
		}
	}

	if len(skipped) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO skipped_lines (run_id, line, reason, raw) VALUES (?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, e := range skipped {
			if _, err := stmt.ExecContext(ctx, id, e.Line, e.Reason.String(), e.Raw); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first. A non-positive last
// returns all runs.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunInfo, error) {
	query := `SELECT id, processed_at, source, records, skipped FROM runs ORDER BY processed_at DESC, id DESC`
	args := []any{}
	if last > 0 {
		query += ` LIMIT ?`
		args = append(args, last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunInfo
	for rows.Next() {
		var info model.RunInfo
		var processedAt string
		if err := rows.Scan(&info.RunID, &processedAt, &info.Source, &info.Records, &info.Skipped); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, processedAt)
		if err != nil {
			return nil, err
		}
		info.ProcessedAt = parsed
		runs = append(runs, info)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListSummaries returns stored summary records matching the query, ordered
// by date then employee code. Records from the latest run win when the same
// employee-day was processed more than once.
func (s *Store) ListSummaries(ctx context.Context, q model.SearchQuery) ([]model.Record, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if q.EmpCode != "" {
		clauses = append(clauses, "emp_code = ?")
		args = append(args, q.EmpCode)
	}
	if q.Date != "" {
		clauses = append(clauses, "date = ?")
		args = append(args, q.Date)
	}
	query := fmt.Sprintf(`SELECT date, emp_code, first_punch, last_punch, total_punches, working_hours, late_entry, early_exit
		FROM summaries
		WHERE %s AND run_id = (SELECT MAX(run_id) FROM summaries s2 WHERE s2.date = summaries.date AND s2.emp_code = summaries.emp_code)
		ORDER BY date ASC, emp_code ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.Record
	for rows.Next() {
		var r model.Record
		if err := rows.Scan(&r.Date, &r.EmpCode, &r.FirstPunch, &r.LastPunch, &r.TotalPunches, &r.WorkingHours, &r.LateEntry, &r.EarlyExit); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ListSkipped returns the skipped lines recorded for a run, in input order.
func (s *Store) ListSkipped(ctx context.Context, runID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT line, reason, raw FROM skipped_lines WHERE run_id = ? ORDER BY rowid ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []string
	for rows.Next() {
		var line int
		var reason, raw string
		if err := rows.Scan(&line, &reason, &raw); err != nil {
			return nil, err
		}
		entries = append(entries, fmt.Sprintf("line %d: %s -> %s", line, reason, raw))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
