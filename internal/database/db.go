// Package database is the sqlite-backed key/value store that holds the
// active run, the history archive and draft exclusions as JSON blobs.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const defaultDBTimeout = 5 * time.Second

type Database struct {
	DB   *sql.DB
	path string
}

// Open creates the database file if needed and applies the schema.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, wrapKeyErr("open", "", fmt.Errorf("create data dir: %w", err))
		}
	}
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, wrapKeyErr("open", "", err)
	}
	db.SetMaxOpenConns(1)

	d := &Database{DB: db, path: path}
	ctx, cancel := withTimeout(ctx)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, wrapKeyErr("ping", "", err)
	}
	if err := d.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
	}
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return wrapKeyErr("migrate", "", err)
		}
	}
	return nil
}

// Path is the file the database was opened from.
func (d *Database) Path() string { return d.path }

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); ok {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, defaultDBTimeout)
}
