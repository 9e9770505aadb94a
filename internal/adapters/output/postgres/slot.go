package postgres

import (
	"context"
	"errors"

	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/infrastructure/db"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const schema = `CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// SlotRepository stores slot values as rows of the kv_slots table.
type SlotRepository struct {
	db  db.Querier
	log *zap.Logger
}

func NewSlotRepository(q db.Querier, log *zap.Logger) (*SlotRepository, error) {
	if q == nil {
		return nil, errors.New("database querier is nil")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}
	return &SlotRepository{
		db:  q,
		log: log,
	}, nil
}

func (r *SlotRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		r.log.Error("failed to create kv_slots table", zap.Error(err))
		return err
	}
	return nil
}

func (r *SlotRepository) Read(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT value FROM kv_slots WHERE key = $1`

	var value string
	if err := r.db.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, exceptions.ErrSlotEmpty
		}
		r.log.Error("failed to read slot", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return []byte(value), nil
}

func (r *SlotRepository) Write(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO kv_slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.Exec(ctx, query, key, string(value)); err != nil {
		r.log.Error("failed to write slot", zap.String("key", key), zap.Error(err))
		return err
	}
	return nil
}
