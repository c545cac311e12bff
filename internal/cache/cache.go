package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/quantmind-br/pyfind/internal/fsops"
	"github.com/spf13/afero"
	_ "modernc.org/sqlite"
)

// Entry is one cached interpreter query result.
// It is only valid while the executable keeps the recorded modification time and size.
type Entry struct {
	Executable string
	ModTime    time.Time
	Size       int64
	Info       []byte
	CachedAt   time.Time
}

// Fresh reports whether the entry still describes a file with the given stat data
func (e *Entry) Fresh(modTime time.Time, size int64) bool {
	return e.ModTime.Equal(modTime) && e.Size == size
}

// Cache stores interpreter query results in sqlite with separate read/write pools
type Cache struct {
	write *sql.DB
	read  *sql.DB
	path  string
}

// Open creates or opens the cache database at path
func Open(ctx context.Context, path string) (*Cache, error) {
	if err := fsops.EnsureDir(afero.NewOsFs(), filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	// Connection string with pragmas
	connStr := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	// Write pool: MUST be 1 connection only
	write, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open write connection: %w", err)
	}
	write.SetMaxOpenConns(1)
	write.SetMaxIdleConns(1)
	write.SetConnMaxIdleTime(time.Minute)
	write.SetConnMaxLifetime(time.Hour)

	read, err := sql.Open("sqlite", connStr)
	if err != nil {
		write.Close()
		return nil, fmt.Errorf("open read connection: %w", err)
	}
	read.SetMaxOpenConns(4)
	read.SetMaxIdleConns(2)
	read.SetConnMaxIdleTime(time.Minute)
	read.SetConnMaxLifetime(time.Hour)

	c := &Cache{
		write: write,
		read:  read,
		path:  path,
	}

	if err := c.initSchema(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return c, nil
}

// Path returns the database file location
func (c *Cache) Path() string {
	return c.path
}

// Close closes both database connections
func (c *Cache) Close() error {
	writeErr := c.write.Close()
	readErr := c.read.Close()
	if writeErr != nil {
		return writeErr
	}
	return readErr
}

func (c *Cache) initSchema(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS interpreters (
    executable TEXT PRIMARY KEY,
    mtime_ns INTEGER NOT NULL,
    size INTEGER NOT NULL,
    info TEXT NOT NULL,
    cached_at INTEGER NOT NULL
);
	`

	if _, err := c.write.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Get returns the entry for executable, or nil when nothing is cached
func (c *Cache) Get(ctx context.Context, executable string) (*Entry, error) {
	query := `
SELECT executable, mtime_ns, size, info, cached_at
FROM interpreters WHERE executable = ?
	`

	entry, err := scanEntry(c.read.QueryRowContext(ctx, query, executable))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query interpreter %s: %w", executable, err)
	}
	return entry, nil
}

// Put inserts or replaces the entry for entry.Executable
func (c *Cache) Put(ctx context.Context, entry *Entry) error {
	cachedAt := entry.CachedAt
	if cachedAt.IsZero() {
		cachedAt = time.Now()
	}

	query := `
INSERT INTO interpreters (executable, mtime_ns, size, info, cached_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(executable) DO UPDATE SET
    mtime_ns = excluded.mtime_ns,
    size = excluded.size,
    info = excluded.info,
    cached_at = excluded.cached_at
	`

	_, err := c.write.ExecContext(ctx, query,
		entry.Executable,
		entry.ModTime.UnixNano(),
		entry.Size,
		string(entry.Info),
		cachedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store interpreter %s: %w", entry.Executable, err)
	}
	return nil
}

// List returns all entries ordered by executable path
func (c *Cache) List(ctx context.Context) ([]Entry, error) {
	query := `
SELECT executable, mtime_ns, size, info, cached_at
FROM interpreters ORDER BY executable
	`

	rows, err := c.read.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query interpreters: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan interpreter: %w", err)
		}
		entries = append(entries, *entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return entries, nil
}

// Delete removes the entry for executable; a missing entry is not an error
func (c *Cache) Delete(ctx context.Context, executable string) error {
	if _, err := c.write.ExecContext(ctx, "DELETE FROM interpreters WHERE executable = ?", executable); err != nil {
		return fmt.Errorf("delete interpreter %s: %w", executable, err)
	}
	return nil
}

// Clear removes every entry and returns how many were dropped
func (c *Cache) Clear(ctx context.Context) (int64, error) {
	result, err := c.write.ExecContext(ctx, "DELETE FROM interpreters")
	if err != nil {
		return 0, fmt.Errorf("clear interpreters: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check rows affected: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	var (
		entry    Entry
		mtimeNs  int64
		info     string
		cachedAt int64
	)

	if err := row.Scan(&entry.Executable, &mtimeNs, &entry.Size, &info, &cachedAt); err != nil {
		return nil, err
	}

	entry.ModTime = time.Unix(0, mtimeNs)
	entry.Info = []byte(info)
	entry.CachedAt = time.Unix(0, cachedAt)
	return &entry, nil
}
