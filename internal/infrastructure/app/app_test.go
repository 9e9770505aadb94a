package app_test

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"task-tracker/internal/config"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/infrastructure/app"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Logger: config.LoggerConfig{Env: "development"},
		Slot: config.SlotConfig{
			Backend:    backend,
			Key:        "konig_tasks_v1",
			Dir:        dir,
			SQLitePath: filepath.Join(dir, "tracker.db"),
		},
		GRPC: config.GRPCConfig{WatchHeartbeat: time.Minute},
	}
}

func TestOpenSlot_UnknownBackend(t *testing.T) {
	_, _, err := app.OpenSlot(context.Background(), testConfig(t, "redis"), zap.NewNop())
	require.ErrorIs(t, err, exceptions.ErrUnknownSlotBackend)
}

func TestNewCore_PersistsAcrossRestarts(t *testing.T) {
	for _, backend := range []string{config.BackendFile, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			ctx := context.Background()
			cfg := testConfig(t, backend)

			core, err := app.NewCore(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			assert.Len(t, core.Store.Tasks(), 3)
			created, err := core.Tracker.CreateTask(ctx)
			require.NoError(t, err)
			core.Close()

			core, err = app.NewCore(ctx, cfg, zap.NewNop())
			require.NoError(t, err)
			defer core.Close()
			tasks := core.Store.Tasks()
			require.Len(t, tasks, 4)
			assert.Equal(t, created.ID, tasks[0].ID)
		})
	}
}

func TestApp_RunServesHTTPUntilCancelled(t *testing.T) {
	application, err := app.Init(context.Background(), testConfig(t, config.BackendFile), zap.NewNop())
	require.NoError(t, err)
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- application.Run(ctx) }()

	port := application.HTTPListener.Addr().(*net.TCPAddr).Port
	url := fmt.Sprintf("http://127.0.0.1:%d/healthz", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}
