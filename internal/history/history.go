// Package history persists the terminal outcome of import operations.
package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed sql/001_initial.sql
var schemaSQL string

// Terminal outcomes recorded per import attempt.
const (
	OutcomeImported  = "imported"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

// Entry is one recorded import attempt.
type Entry struct {
	ID         int64
	DriveTitle string
	CuePath    string
	BundlePath string
	Outcome    string
	Data       string // JSON blob
	CreatedAt  time.Time
}

// Filter specifies criteria for listing history.
type Filter struct {
	Outcome *string
	Limit   int
}

// Store persists import history records.
type Store struct {
	db *sql.DB
}

// NewStore creates a history store over an existing database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open opens (creating if necessary) the history database at path and
// applies the schema.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return db, nil
}

// Add inserts a new history entry.
func (s *Store) Add(e *Entry) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO imports (drive_title, cue_path, bundle_path, outcome, data, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.DriveTitle, e.CuePath, e.BundlePath, e.Outcome, e.Data, now,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	e.ID = id
	e.CreatedAt = now
	return nil
}

// List returns history entries matching the filter, most recent first.
func (s *Store) List(f Filter) ([]*Entry, error) {
	var conditions []string
	var args []any

	if f.Outcome != nil {
		conditions = append(conditions, "outcome = ?")
		args = append(args, *f.Outcome)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `SELECT id, drive_title, cue_path, bundle_path, outcome, data, created_at
		FROM imports ` + whereClause + ` ORDER BY created_at DESC, id DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.ID, &e.DriveTitle, &e.CuePath, &e.BundlePath, &e.Outcome, &e.Data, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}

	return results, nil
}
