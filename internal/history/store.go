// Package history records processing runs in a local SQLite database so
// past results stay inspectable from the CLI.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Record is one processed (or checked) file.
type Record struct {
	RunID           string
	File            string
	Language        string
	ContentType     string
	SDHMode         bool
	TotalBlocks     int
	RemovedBlocks   int
	CharViolations  int
	SpeedViolations int
	ComplianceRate  float64
	CreatedAt       time.Time
}

// Open initializes or connects to the history database.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Add inserts a run record, assigning it a fresh run ID.
func (s *Store) Add(ctx context.Context, rec Record) (string, error) {
	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
            run_id, file, language, content_type, sdh_mode,
            total_blocks, removed_blocks, char_violations, speed_violations,
            compliance_rate, created_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.File,
		rec.Language,
		rec.ContentType,
		boolToInt(rec.SDHMode),
		rec.TotalBlocks,
		rec.RemovedBlocks,
		rec.CharViolations,
		rec.SpeedViolations,
		rec.ComplianceRate,
		createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// Recent returns the newest records, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, file, language, content_type, sdh_mode,
            total_blocks, removed_blocks, char_violations, speed_violations,
            compliance_rate, created_at
        FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

// ForFile returns records for one file, most recent first.
func (s *Store) ForFile(ctx context.Context, file string, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, file, language, content_type, sdh_mode,
            total_blocks, removed_blocks, char_violations, speed_violations,
            compliance_rate, created_at
        FROM runs WHERE file = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`, file, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", file, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var sdhMode int
	var createdAt string
	err := rows.Scan(
		&rec.RunID, &rec.File, &rec.Language, &rec.ContentType, &sdhMode,
		&rec.TotalBlocks, &rec.RemovedBlocks, &rec.CharViolations,
		&rec.SpeedViolations, &rec.ComplianceRate, &createdAt,
	)
	if err != nil {
		return Record{}, fmt.Errorf("scan run: %w", err)
	}
	rec.SDHMode = sdhMode != 0
	if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.CreatedAt = ts
	}
	return rec, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
