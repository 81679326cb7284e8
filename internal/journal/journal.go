// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite audit log of conversion runs: one row per
// run and one row per file handed to the converter. The converter writes
// it; the history command reads it. Nothing in the conversion path reads
// it back.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/jpegify/pkg/types"
)

// Store is an open journal database.
type Store struct {
	db *sql.DB
}

// Run is one row of the runs table.
type Run struct {
	ID           int64
	Root         string
	StartedAt    time.Time
	FinishedAt   time.Time // zero while the run is open or was interrupted
	Converted    int
	Skipped      int
	Failed       int
	DeleteFailed int
}

// File is one row of the files table.
type File struct {
	RunID  int64
	Source string
	Output string
	Status types.FileStatus
	Kind   types.ErrorKind
	Stage  types.Stage
	Error  string
}

// Open opens or creates the journal at path, creating parent directories
// and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			converted INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0,
			delete_failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			source TEXT NOT NULL,
			output TEXT,
			status TEXT NOT NULL,
			kind TEXT,
			stage TEXT,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// BeginRun inserts an open run and returns its id.
func (s *Store) BeginRun(ctx context.Context, root string, startedAt time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (root, started_at) VALUES (?, ?)`,
		root, formatTime(startedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	return res.LastInsertId()
}

// RecordFile appends one file outcome to run runID.
func (s *Store) RecordFile(ctx context.Context, runID int64, r types.FileResult) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO files (run_id, source, output, status, kind, stage, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Source, r.Output, string(r.Status), string(r.Kind), string(r.Stage), r.ErrorMessage(),
	)
	if err != nil {
		return fmt.Errorf("inserting file %s: %w", r.Source, err)
	}
	return nil
}

// FinishRun stores the final counters of run runID.
func (s *Store) FinishRun(ctx context.Context, runID int64, sum types.RunSummary) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, converted = ?, skipped = ?, failed = ?, delete_failed = ?
		 WHERE id = ?`,
		formatTime(sum.FinishedAt), sum.Converted, sum.Skipped, sum.Failed, sum.DeleteFailed, runID,
	)
	if err != nil {
		return fmt.Errorf("updating run %d: %w", runID, err)
	}
	return nil
}

// Runs returns up to limit runs, newest first.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, started_at, COALESCE(finished_at, ''), converted, skipped, failed, delete_failed
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.Root, &started, &finished,
			&r.Converted, &r.Skipped, &r.Failed, &r.DeleteFailed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the files recorded for run runID in processing order.
func (s *Store) Files(ctx context.Context, runID int64) ([]File, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source, COALESCE(output, ''), status, COALESCE(kind, ''), COALESCE(stage, ''), COALESCE(error, '')
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %d: %w", runID, err)
	}
	defer rows.Close()

	var files []File
	for rows.Next() {
		var f File
		var status, kind, stage string
		if err := rows.Scan(&f.RunID, &f.Source, &f.Output, &status, &kind, &stage, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Status = types.FileStatus(status)
		f.Kind = types.ErrorKind(kind)
		f.Stage = types.Stage(stage)
		files = append(files, f)
	}
	return files, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
