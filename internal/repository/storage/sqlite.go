package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"rocketshoes/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS storage_slots (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type sqliteRepo struct {
	db     *sql.DB
	logger *log.Logger
}

// OpenSQLite opens (or creates) the database at path and ensures the slot table exists.
func OpenSQLite(ctx context.Context, path string, logger *log.Logger) (Repository, *sql.DB, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout=5000&_pragma=journal_mode=WAL")
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite schema: %w", err)
	}
	return &sqliteRepo{db: db, logger: logger}, db, nil
}

func (r *sqliteRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM storage_slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		r.logger.Printf("storage sqlite: get key=%s error=%v", key, err)
		return "", err
	}
	return value, nil
}

func (r *sqliteRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO storage_slots (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key)
		DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		r.logger.Printf("storage sqlite: set key=%s error=%v", key, err)
		return err
	}
	r.logger.Printf("storage sqlite: set key=%s bytes=%d", key, len(value))
	return nil
}

func (r *sqliteRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
