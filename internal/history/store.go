// Package history persists per-run analysis snapshots in a local sqlite
// database so size and miss-rate trends survive process restarts.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(2000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", cleanPath)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveSnapshot upserts one run keyed by its analysis id.
func (s *Store) SaveSnapshot(snapshot Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snapshot.AnalysisID == "" {
		return fmt.Errorf("snapshot has no analysis id")
	}
	if snapshot.Timestamp.IsZero() {
		snapshot.Timestamp = time.Now().UTC()
	}
	if snapshot.SchemaVersion == 0 {
		snapshot.SchemaVersion = SchemaVersion
	}
	if snapshot.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported snapshot schema version %d", snapshot.SchemaVersion)
	}

	query := `
INSERT INTO snapshots (
  schema_version, analysis_id, ts_utc, file_count, entity_count, import_count,
  hit_count, miss_count, cycle_count, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(analysis_id) DO UPDATE SET
  schema_version=excluded.schema_version,
  ts_utc=excluded.ts_utc,
  file_count=excluded.file_count,
  entity_count=excluded.entity_count,
  import_count=excluded.import_count,
  hit_count=excluded.hit_count,
  miss_count=excluded.miss_count,
  cycle_count=excluded.cycle_count,
  duration_ms=excluded.duration_ms
`
	_, err := s.db.Exec(
		query,
		snapshot.SchemaVersion,
		snapshot.AnalysisID,
		snapshot.Timestamp.UTC().Format(time.RFC3339Nano),
		snapshot.FileCount,
		snapshot.EntityCount,
		snapshot.ImportCount,
		snapshot.HitCount,
		snapshot.MissCount,
		snapshot.CycleCount,
		snapshot.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snapshot.AnalysisID, err)
	}
	return nil
}

// LoadSnapshots returns all snapshots at or after since, oldest first. A zero
// since loads everything.
func (s *Store) LoadSnapshots(since time.Time) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT
  schema_version, analysis_id, ts_utc, file_count, entity_count, import_count,
  hit_count, miss_count, cycle_count, duration_ms
FROM snapshots
`
	args := make([]any, 0, 1)
	if !since.IsZero() {
		query += " WHERE ts_utc >= ?"
		args = append(args, since.UTC().Format(time.RFC3339Nano))
	}
	query += " ORDER BY ts_utc ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("load snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]Snapshot, 0)
	for rows.Next() {
		var (
			tsRaw    string
			snapshot Snapshot
		)
		if err := rows.Scan(
			&snapshot.SchemaVersion,
			&snapshot.AnalysisID,
			&tsRaw,
			&snapshot.FileCount,
			&snapshot.EntityCount,
			&snapshot.ImportCount,
			&snapshot.HitCount,
			&snapshot.MissCount,
			&snapshot.CycleCount,
			&snapshot.DurationMS,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, tsRaw); err == nil {
			snapshot.Timestamp = ts
		}
		snapshots = append(snapshots, snapshot)
	}
	return snapshots, rows.Err()
}
