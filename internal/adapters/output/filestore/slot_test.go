package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"task-tracker/internal/core/domain/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestSlotStore_ReadMissingIsEmpty(t *testing.T) {
	s, err := NewSlotStore(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)

	_, err = s.Read(context.Background(), "konig_tasks_v1")
	assert.ErrorIs(t, err, exceptions.ErrSlotEmpty)
}

func TestSlotStore_WriteThenRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	s, err := NewSlotStore(dir, zaptest.NewLogger(t))
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Write(ctx, "konig_tasks_v1", []byte(`{"version":1,"tasks":[]}`)))
	require.NoError(t, s.Write(ctx, "konig_tasks_v1", []byte(`{"version":1,"tasks":[{"id":"a"}]}`)))

	got, err := s.Read(ctx, "konig_tasks_v1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"tasks":[{"id":"a"}]}`, string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "konig_tasks_v1.json", entries[0].Name())
}

func TestSlotStore_RejectsPathLikeKeys(t *testing.T) {
	s, err := NewSlotStore(t.TempDir(), zaptest.NewLogger(t))
	require.NoError(t, err)

	for _, key := range []string{"", "..", "a/b", `a\b`} {
		assert.Error(t, s.Write(context.Background(), key, []byte("x")), key)
	}
}

func TestNewSlotStore_RequiresDir(t *testing.T) {
	_, err := NewSlotStore(" ", zaptest.NewLogger(t))
	assert.Error(t, err)
}
