// Package cache persists per-file export results in a SQLite database so
// that unchanged files skip re-parsing on subsequent runs. Entries are
// keyed by path and invalidated by a content hash.
package cache

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS files (
	path       TEXT PRIMARY KEY,
	hash       TEXT NOT NULL,
	export     TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
);
`

// Store is a content-addressed cache of export records. A cached entry is
// served only when the stored hash matches the file's current content
// hash; anything else is a miss.
type Store struct {
	db *sql.DB
}

// Open opens or creates the cache database at dbPath, creating parent
// directories as needed.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Get returns the cached export for path if its stored hash matches hash.
// A missing or stale entry is a miss, not an error.
func (s *Store) Get(path, hash string) ([]byte, bool, error) {
	query, args, err := sq.Select("hash", "export").
		From("files").
		Where(sq.Eq{"path": path}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var storedHash, export string
	err = s.db.QueryRow(query, args...).Scan(&storedHash, &export)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	if storedHash != hash || export == "" {
		return nil, false, nil
	}
	return []byte(export), true, nil
}

// Put stores or replaces the export for path under the given content hash.
func (s *Store) Put(path, hash string, export []byte) error {
	query, args, err := sq.Replace("files").
		Columns("path", "hash", "export", "updated_at").
		Values(path, hash, string(export), time.Now().UTC()).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Prune drops entries for paths no longer present in the project.
func (s *Store) Prune(live []string) error {
	keep := make(map[string]bool, len(live))
	for _, path := range live {
		keep[path] = true
	}

	rows, err := s.db.Query("SELECT path FROM files")
	if err != nil {
		return fmt.Errorf("failed to list cache entries: %w", err)
	}
	defer rows.Close()

	stale := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return err
		}
		if !keep[path] {
			stale = append(stale, path)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(stale) == 0 {
		return nil
	}

	query, args, err := sq.Delete("files").Where(sq.Eq{"path": stale}).ToSql()
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to prune cache entries: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashBytes computes the content hash used for cache invalidation.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
