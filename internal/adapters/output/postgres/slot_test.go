package postgres

import (
	"context"
	"errors"
	"testing"

	"task-tracker/internal/core/domain/exceptions"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeRow struct {
	value string
	err   error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*string)) = r.value
	return nil
}

type fakeQuerier struct {
	row      fakeRow
	execErr  error
	execSQL  []string
	execArgs [][]any
}

func (q *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.execSQL = append(q.execSQL, sql)
	q.execArgs = append(q.execArgs, args)
	return pgconn.NewCommandTag("INSERT 0 1"), q.execErr
}

func (q *fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return q.row
}

func TestSlotRepository_ReadNoRowsIsEmpty(t *testing.T) {
	repo, err := NewSlotRepository(&fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}, zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = repo.Read(context.Background(), "konig_tasks_v1")
	assert.ErrorIs(t, err, exceptions.ErrSlotEmpty)
}

func TestSlotRepository_ReadValue(t *testing.T) {
	repo, err := NewSlotRepository(&fakeQuerier{row: fakeRow{value: `{"version":1,"tasks":[]}`}}, zaptest.NewLogger(t))
	require.NoError(t, err)

	got, err := repo.Read(context.Background(), "konig_tasks_v1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"tasks":[]}`, string(got))
}

func TestSlotRepository_WriteUpserts(t *testing.T) {
	q := &fakeQuerier{}
	repo, err := NewSlotRepository(q, zaptest.NewLogger(t))
	require.NoError(t, err)

	require.NoError(t, repo.Write(context.Background(), "konig_tasks_v1", []byte("payload")))
	require.Len(t, q.execSQL, 1)
	assert.Contains(t, q.execSQL[0], "ON CONFLICT (key) DO UPDATE")
	assert.Equal(t, []any{"konig_tasks_v1", "payload"}, q.execArgs[0])
}

func TestSlotRepository_WriteErrorPropagates(t *testing.T) {
	boom := errors.New("connection reset")
	repo, err := NewSlotRepository(&fakeQuerier{execErr: boom}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Write(context.Background(), "k", nil), boom)
}

func TestNewSlotRepository_NilDeps(t *testing.T) {
	_, err := NewSlotRepository(nil, zaptest.NewLogger(t))
	assert.Error(t, err)
	_, err = NewSlotRepository(&fakeQuerier{}, nil)
	assert.Error(t, err)
}
