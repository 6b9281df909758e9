// Package registry persists the outcome of checkout reconciliations so
// `srcup status` and `srcup history` can report on them without touching
// git. The store is advisory; reconciliation never depends on it.
package registry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

// Status values for a recorded reconciliation.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Record is one reconciliation outcome.
type Record struct {
	ID         string
	Artifact   string
	Branch     string
	DestPath   string
	HeadCommit string
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Registry wraps the SQLite connection.
type Registry struct {
	conn *sql.DB
}

// Open creates or opens the registry database at the given path, creating
// parent directories as needed.
func Open(path string) (*Registry, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create registry dir: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	// WAL lets concurrent materializers record without blocking readers.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA busy_timeout=5000"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	r := &Registry{conn: conn}
	if err := r.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.conn.Close()
}

func (r *Registry) migrate() error {
	schema := `
CREATE TABLE IF NOT EXISTS reconciles (
    id           TEXT PRIMARY KEY,
    artifact     TEXT NOT NULL,
    branch       TEXT NOT NULL,
    dest_path    TEXT NOT NULL,
    head_commit  TEXT,
    status       TEXT NOT NULL,
    error        TEXT,
    started_at   DATETIME NOT NULL,
    finished_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reconciles_dest ON reconciles(dest_path, finished_at);
CREATE INDEX IF NOT EXISTS idx_reconciles_finished ON reconciles(finished_at);
`
	if _, err := r.conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// NewID returns a fresh ULID for a reconciliation record.
func NewID() string {
	return ulid.Make().String()
}

// Add inserts a reconciliation record. A missing ID is filled in.
func (r *Registry) Add(rec *Record) error {
	if rec.ID == "" {
		rec.ID = NewID()
	}

	_, err := r.conn.Exec(`
		INSERT INTO reconciles (
			id, artifact, branch, dest_path, head_commit,
			status, error, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Artifact,
		rec.Branch,
		rec.DestPath,
		rec.HeadCommit,
		rec.Status,
		rec.Error,
		rec.StartedAt,
		rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first.
func (r *Registry) Recent(limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.conn.Query(`
		SELECT id, artifact, branch, dest_path, head_commit,
		       status, error, started_at, finished_at
		FROM reconciles
		ORDER BY finished_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// LatestByDest returns the most recent record per destination path.
func (r *Registry) LatestByDest() (map[string]Record, error) {
	rows, err := r.conn.Query(`
		SELECT id, artifact, branch, dest_path, head_commit,
		       status, error, started_at, finished_at
		FROM reconciles
		WHERE id IN (
			SELECT id FROM reconciles r2
			WHERE r2.finished_at = (
				SELECT MAX(finished_at) FROM reconciles r3
				WHERE r3.dest_path = r2.dest_path
			)
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest records: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	latest := make(map[string]Record, len(records))
	for _, rec := range records {
		latest[rec.DestPath] = rec
	}
	return latest, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var records []Record
	for rows.Next() {
		var rec Record
		var head, errMsg sql.NullString
		if err := rows.Scan(
			&rec.ID,
			&rec.Artifact,
			&rec.Branch,
			&rec.DestPath,
			&head,
			&rec.Status,
			&errMsg,
			&rec.StartedAt,
			&rec.FinishedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		rec.HeadCommit = head.String
		rec.Error = errMsg.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
