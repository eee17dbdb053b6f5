// Package history keeps an append-only log of analyzed uploads in SQLite.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/KaramelBytes/resultscope/internal/utils"
)

// Entry is one recorded upload.
type Entry struct {
	ID         string    `json:"id" yaml:"id"`
	FileName   string    `json:"fileName" yaml:"fileName"`
	RowCount   int       `json:"rows" yaml:"rows"`
	UploadedAt time.Time `json:"uploadedAt" yaml:"uploadedAt"`
}

// Store is a SQLite-backed upload history. It is safe for concurrent use.
type Store struct {
	db *sql.DB
}

const schema = `CREATE TABLE IF NOT EXISTS uploads (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	file_name TEXT NOT NULL,
	row_count INTEGER NOT NULL,
	uploaded_at INTEGER NOT NULL
)`

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := utils.EnsureDir(dir); err != nil {
			return nil, fmt.Errorf("mkdir history dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// single writer; avoids SQLITE_BUSY between pooled connections
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append records e. An empty ID is replaced with a generated "u_" id and a
// zero UploadedAt with the current time. The stored entry is returned.
func (s *Store) Append(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = "u_" + uuid.NewString()
	}
	if e.UploadedAt.IsZero() {
		e.UploadedAt = time.Now()
	}
	e.UploadedAt = e.UploadedAt.UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO uploads (id, file_name, row_count, uploaded_at) VALUES (?, ?, ?, ?)`,
		e.ID, e.FileName, e.RowCount, e.UploadedAt.UnixNano())
	if err != nil {
		return Entry{}, fmt.Errorf("insert upload: %w", err)
	}
	return e, nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns all.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, file_name, row_count, uploaded_at FROM uploads ORDER BY uploaded_at DESC, seq DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var ns int64
		if err := rows.Scan(&e.ID, &e.FileName, &e.RowCount, &ns); err != nil {
			return nil, fmt.Errorf("scan upload: %w", err)
		}
		e.UploadedAt = time.Unix(0, ns).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return out, nil
}
