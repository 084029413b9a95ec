// Package store provides a SQLite-backed cache for parsed project documents.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/costplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Cache provides SQLite-backed document caching.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// GetTrackedFiles returns a map of file_path -> FileInfo for all tracked files.
func (c *Cache) GetTrackedFiles() (map[string]FileInfo, error) {
	rows, err := c.db.Query("SELECT file_path, mtime_ns, size_bytes FROM file_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// Document is a cached, already decoded project file.
type Document struct {
	Path   string
	Format string
	Data   model.ProjectData
}

// SaveDocument stores a decoded document and its file tracking info.
func (c *Cache) SaveDocument(d Document, mtimeNs, sizeBytes int64) error {
	body, err := json.Marshal(d.Data)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", d.Path, err)
	}

	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)
	info := d.Data.ProjectInfo

	_, err = tx.Exec(`INSERT OR REPLACE INTO documents
		(file_path, project_name, start_date, end_date, format, body, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.Path, info.ProjectName, info.StartDate, info.EndDate, d.Format, string(body), now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO file_tracker (file_path, mtime_ns, size_bytes)
		VALUES (?, ?, ?)`, d.Path, mtimeNs, sizeBytes)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadDocuments reads all cached documents keyed by file path.
func (c *Cache) LoadDocuments() (map[string]Document, error) {
	rows, err := c.db.Query("SELECT file_path, format, body FROM documents")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	docs := make(map[string]Document)
	for rows.Next() {
		var d Document
		var body string
		if err := rows.Scan(&d.Path, &d.Format, &body); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(body), &d.Data); err != nil {
			return nil, fmt.Errorf("decoding cached %s: %w", d.Path, err)
		}
		docs[d.Path] = d
	}
	return docs, rows.Err()
}

// DeleteDocument removes a document and its tracking entry.
func (c *Cache) DeleteDocument(filePath string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM documents WHERE file_path = ?", filePath); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM file_tracker WHERE file_path = ?", filePath); err != nil {
		return err
	}
	return tx.Commit()
}

// DocumentCount returns the number of cached documents.
func (c *Cache) DocumentCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	return count, err
}
