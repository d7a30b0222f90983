package database

import (
	"context"
	"database/sql"
	"errors"
)

// Get returns the blob stored under key. A missing key is not an error.
func (d *Database) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if d == nil || d.DB == nil {
		return nil, false, wrapKeyErr("get", key, ErrClosed)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var value string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, wrapKeyErr("get", key, err)
	}
	return []byte(value), true, nil
}

// Set stores blob under key, replacing any previous value.
func (d *Database) Set(ctx context.Context, key string, blob []byte) error {
	if d == nil || d.DB == nil {
		return wrapKeyErr("set", key, ErrClosed)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := d.DB.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(blob))
	return wrapKeyErr("set", key, err)
}

// Remove deletes key. Removing a missing key succeeds.
func (d *Database) Remove(ctx context.Context, key string) error {
	if d == nil || d.DB == nil {
		return wrapKeyErr("remove", key, ErrClosed)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := d.DB.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return wrapKeyErr("remove", key, err)
}

// Keys lists stored keys with the given prefix in key order.
func (d *Database) Keys(ctx context.Context, prefix string) ([]string, error) {
	if d == nil || d.DB == nil {
		return nil, wrapKeyErr("keys", prefix, ErrClosed)
	}
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := d.DB.QueryContext(ctx,
		`SELECT key FROM kv WHERE substr(key, 1, ?) = ? ORDER BY key`, len(prefix), prefix)
	if err != nil {
		return nil, wrapKeyErr("keys", prefix, err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, wrapKeyErr("keys", prefix, err)
		}
		keys = append(keys, k)
	}
	return keys, wrapKeyErr("keys", prefix, rows.Err())
}
