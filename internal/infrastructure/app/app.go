package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	grpcadapter "task-tracker/internal/adapters/input/grpc"
	httpadapter "task-tracker/internal/adapters/input/http"
	"task-tracker/internal/adapters/output/filestore"
	"task-tracker/internal/adapters/output/postgres"
	"task-tracker/internal/adapters/output/report"
	"task-tracker/internal/adapters/output/sqlite"
	"task-tracker/internal/config"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/core/ports"
	"task-tracker/internal/core/service"
	dbinfra "task-tracker/internal/infrastructure/db"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 5 * time.Second

// Core is the task store and use cases over the configured slot backend, without any
// network listeners.
type Core struct {
	Config  *config.Config
	Log     *zap.Logger
	Store   *service.TaskStore
	Tracker *service.TrackerService
	close   func()
}

// OpenSlot connects the backend named by cfg.Slot.Backend. The returned func releases it.
func OpenSlot(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.SlotStore, func(), error) {
	switch cfg.Slot.Backend {
	case config.BackendFile:
		slot, err := filestore.NewSlotStore(cfg.Slot.Dir, log)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() {}, nil

	case config.BackendSQLite:
		slot, err := sqlite.Open(ctx, cfg.Slot.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		return slot, func() {
			if err := slot.Close(); err != nil {
				log.Warn("slot: sqlite close failed", zap.Error(err))
			}
		}, nil

	case config.BackendPostgres:
		pool, err := dbinfra.ConnectToDB(ctx, cfg.GetDSN(), log)
		if err != nil {
			return nil, nil, err
		}
		slot, err := postgres.NewSlotRepository(pool, log)
		if err != nil {
			pool.Close()
			return nil, nil, err
		}
		if err := slot.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return slot, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", exceptions.ErrUnknownSlotBackend, cfg.Slot.Backend)
	}
}

func NewCore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Core, error) {
	slot, closeSlot, err := OpenSlot(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open slot", zap.String("backend", cfg.Slot.Backend), zap.Error(err))
		return nil, err
	}

	store, err := service.NewTaskStore(slot, cfg.Slot.Key, log)
	if err != nil {
		closeSlot()
		return nil, err
	}
	store.Load(ctx)

	tracker, err := service.NewTrackerService(store, report.NewExporter(log), log)
	if err != nil {
		log.Error("failed to init tracker service", zap.Error(err))
		closeSlot()
		return nil, err
	}

	return &Core{
		Config:  cfg,
		Log:     log,
		Store:   store,
		Tracker: tracker,
		close:   closeSlot,
	}, nil
}

func (c *Core) Close() {
	if c == nil || c.close == nil {
		return
	}
	c.close()
	_ = c.Log.Sync()
}

type App struct {
	*Core
	GRPCServer   *grpc.Server
	GRPCListener net.Listener
	HTTPServer   *http.Server
	HTTPListener net.Listener
}

func Init(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	core, err := NewCore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	grpcListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.GRPC.Port))
	if err != nil {
		log.Error("failed to listen grpc", zap.Error(err))
		core.Close()
		return nil, err
	}
	httpListener, err := net.Listen("tcp", fmt.Sprintf(":%d", cfg.HTTP.Port))
	if err != nil {
		log.Error("failed to listen http", zap.Error(err))
		_ = grpcListener.Close()
		core.Close()
		return nil, err
	}

	grpcServer := grpc.NewServer()
	grpcadapter.RegisterTaskServiceServer(grpcServer, grpcadapter.NewTaskServer(core.Tracker, cfg.GRPC.WatchHeartbeat, log))
	reflection.Register(grpcServer)

	if cfg.Logger.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpadapter.NewRouter(httpadapter.NewHandler(core.Tracker, log), log)

	return &App{
		Core:         core,
		GRPCServer:   grpcServer,
		GRPCListener: grpcListener,
		HTTPServer: &http.Server{
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		HTTPListener: httpListener,
	}, nil
}

// Run serves gRPC and HTTP until ctx is done or either server fails, then shuts both down.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		a.Log.Info("grpc server started", zap.String("addr", a.GRPCListener.Addr().String()))
		if err := a.GRPCServer.Serve(a.GRPCListener); err != nil {
			errCh <- fmt.Errorf("grpc serve: %w", err)
		}
	}()
	go func() {
		a.Log.Info("http server started", zap.String("addr", a.HTTPListener.Addr().String()))
		if err := a.HTTPServer.Serve(a.HTTPListener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http serve: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Log.Info("shutting down server")
	case runErr = <-errCh:
		a.Log.Error("server stopped", zap.Error(runErr))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Log.Warn("http shutdown failed", zap.Error(err))
	}

	// watch streams stay open until the client leaves
	stopped := make(chan struct{})
	go func() {
		a.GRPCServer.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-shutdownCtx.Done():
		a.GRPCServer.Stop()
	}

	a.Log.Info("server stopped")
	return runErr
}

func (a *App) Close() {
	if a == nil {
		return
	}
	_ = a.GRPCListener.Close()
	_ = a.HTTPListener.Close()
	a.Core.Close()
}
