package kv

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore keeps values in the kv_entries table.
type PGStore struct {
	DB *sql.DB
}

func (p *PGStore) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `
SELECT value
FROM kv_entries
WHERE key = $1
LIMIT 1`
	var value string
	if err := p.DB.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(value), nil
}

func (p *PGStore) Set(ctx context.Context, key string, value []byte) error {
	const query = `
INSERT INTO kv_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET
  value = EXCLUDED.value,
  updated_at = now()`
	_, err := p.DB.ExecContext(ctx, query, key, string(value))
	return err
}
