package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

var schemas = map[string]string{
	"sqlite": `CREATE TABLE IF NOT EXISTS kv_store (
		store_key   TEXT PRIMARY KEY,
		store_value TEXT NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	"postgres": `CREATE TABLE IF NOT EXISTS kv_store (
		store_key   VARCHAR(255) PRIMARY KEY,
		store_value TEXT NOT NULL,
		updated_at  BIGINT NOT NULL
	)`,
	"mysql": `CREATE TABLE IF NOT EXISTS kv_store (
		store_key   VARCHAR(255) PRIMARY KEY,
		store_value MEDIUMTEXT NOT NULL,
		updated_at  BIGINT NOT NULL
	)`,
}

var upserts = map[string]string{
	"sqlite": `INSERT INTO kv_store (store_key, store_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE SET store_value = excluded.store_value, updated_at = excluded.updated_at`,
	"postgres": `INSERT INTO kv_store (store_key, store_value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (store_key) DO UPDATE SET store_value = EXCLUDED.store_value, updated_at = EXCLUDED.updated_at`,
	"mysql": `INSERT INTO kv_store (store_key, store_value, updated_at) VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE store_value = VALUES(store_value), updated_at = VALUES(updated_at)`,
}

// SQLStore is a Store backed by a single kv_store table.
type SQLStore struct {
	db     *sqlx.DB
	upsert string
}

// NewSQLStore creates the kv_store table if needed.
func NewSQLStore(ctx context.Context, db *sqlx.DB) (*SQLStore, error) {
	dialect := db.DriverName()
	schema, ok := schemas[dialect]
	if !ok {
		return nil, fmt.Errorf("no kv schema for driver %q", dialect)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating kv_store: %w", err)
	}

	return &SQLStore{db: db, upsert: db.Rebind(upserts[dialect])}, nil
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value string
	err := s.db.GetContext(ctx, &value, s.db.Rebind(`SELECT store_value FROM kv_store WHERE store_key = ?`), key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (s *SQLStore) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.upsert, key, string(value), time.Now().Unix())
	return err
}

func (s *SQLStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM kv_store WHERE store_key = ?`), key)
	return err
}
