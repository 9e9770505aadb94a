// Package sqlite provides a SQLite-backed slot store for single-machine deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"task-tracker/internal/core/domain/exceptions"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

type SlotStore struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the database at path and makes sure the slot table exists.
func Open(ctx context.Context, path string, log *zap.Logger) (*SlotStore, error) {
	if log == nil {
		return nil, errors.New("logger is nil")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// sqlite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv_slots table: %w", err)
	}

	log.Info("sqlite slot store opened", zap.String("path", path))
	return &SlotStore{db: db, log: log}, nil
}

func (s *SlotStore) Close() error {
	return s.db.Close()
}

func (s *SlotStore) Read(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_slots WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, exceptions.ErrSlotEmpty
		}
		s.log.Error("slot: read failed", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return value, nil
}

func (s *SlotStore) Write(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value,
	)
	if err != nil {
		s.log.Error("slot: write failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}
