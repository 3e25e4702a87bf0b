// CLAUDE:SUMMARY SQLite run index: one row per completed run with winners and the history file reference.
package report

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Schema for the runs index table.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at         TEXT NOT NULL,
	duration_ms        REAL NOT NULL,
	load_time_winner   TEXT DEFAULT '',
	transfer_winner    TEXT DEFAULT '',
	navigation_winner  TEXT DEFAULT '',
	report_file        TEXT NOT NULL,
	created_at         INTEGER NOT NULL
);
`

// RunRow is a row from the runs table.
type RunRow struct {
	ID               int64
	StartedAt        string
	DurationMs       float64
	LoadTimeWinner   string
	TransferWinner   string
	NavigationWinner string
	ReportFile       string
}

// Index records run summaries in SQLite so history can be queried
// without scanning JSON files.
type Index struct {
	db *sql.DB
}

// OpenIndex opens (and if needed creates) the runs index at path. The
// caller must have registered a sqlite driver named "sqlite".
func OpenIndex(ctx context.Context, path string) (*Index, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("report: open index %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("report: create schema: %w", err)
	}
	return &Index{db: db}, nil
}

// InsertRun records one completed run.
func (ix *Index) InsertRun(ctx context.Context, rep *Report, reportFile string) error {
	_, err := ix.db.ExecContext(ctx, `
		INSERT INTO runs (started_at, duration_ms, load_time_winner,
		                  transfer_winner, navigation_winner, report_file, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.Timestamp, rep.TestDurationMs,
		rep.Comparison.LoadTimeWinner,
		rep.Comparison.TransferSizeWinner,
		rep.Comparison.NavigationWinner,
		reportFile, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("report: insert run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent limit runs, newest first.
func (ix *Index) ListRuns(ctx context.Context, limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := ix.db.QueryContext(ctx, `
		SELECT id, started_at, duration_ms, load_time_winner,
		       transfer_winner, navigation_winner, report_file
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("report: list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.DurationMs,
			&r.LoadTimeWinner, &r.TransferWinner, &r.NavigationWinner, &r.ReportFile); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (ix *Index) Close() error {
	return ix.db.Close()
}
