// Package store keeps the export history in SQLite. Financial records stay
// in their CSV/JSON files and are re-read per operation; only export
// metadata lands here.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // register sqlite driver
)

// History provides the SQLite-backed export log.
type History struct {
	db *sql.DB
}

// Export is one recorded export run.
type Export struct {
	ID        int64
	CreatedAt time.Time
	Month     string
	Format    string
	Path      string
}

// Path returns the history database location under the data directory.
func Path(dataDir string) string {
	return filepath.Join(dataDir, "history.db")
}

// Open opens or creates the history database at the given path.
func Open(dbPath string) (*History, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &History{db: db}, nil
}

// Close closes the history database.
func (h *History) Close() error {
	return h.db.Close()
}

// Record logs one export. Month may be empty for all-month workbooks.
func (h *History) Record(month, format, path string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := h.db.Exec(`INSERT INTO exports (created_at, month, format, path)
		VALUES (?, ?, ?, ?)`, now, month, format, path)
	return err
}

// Recent returns the newest exports first. A non-positive limit selects
// the default page of 20.
func (h *History) Recent(limit int) ([]Export, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := h.db.Query(`SELECT id, created_at, month, format, path
		FROM exports ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Export
	for rows.Next() {
		var e Export
		var created string
		if err := rows.Scan(&e.ID, &created, &e.Month, &e.Format, &e.Path); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of recorded exports.
func (h *History) Count() (int, error) {
	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM exports").Scan(&count)
	return count, err
}
