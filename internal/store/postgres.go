package store

import (
	"context"
	"database/sql"
	"errors"
)

// PostgresKV 把所有条目保存在 kv_entries 表中，一个键一行
type PostgresKV struct {
	dbpool *sql.DB
}

func NewPostgresKV(ctx context.Context, dbpool *sql.DB) (*PostgresKV, error) {
	query := `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := dbpool.ExecContext(ctx, query); err != nil {
		return nil, err
	}

	return &PostgresKV{dbpool: dbpool}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT value FROM kv_entries WHERE key = $1
	`

	var value string
	if err := p.dbpool.QueryRowContext(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", err
	}

	return value, nil
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`

	_, err := p.dbpool.ExecContext(ctx, query, key, value)
	return err
}

func (p *PostgresKV) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM kv_entries WHERE key = $1
	`

	_, err := p.dbpool.ExecContext(ctx, query, key)
	return err
}

func (p *PostgresKV) Close() error {
	return p.dbpool.Close()
}
