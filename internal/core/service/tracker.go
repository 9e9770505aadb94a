package service

import (
	"context"
	"errors"
	"time"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/core/metrics"
	"task-tracker/internal/core/ports"
	"task-tracker/internal/core/query"

	"go.uber.org/zap"
)

type TrackerService struct {
	store    *TaskStore
	exporter ports.ReportExporter
	now      func() time.Time
	log      *zap.Logger
}

type TrackerOption func(*TrackerService)

func WithClock(now func() time.Time) TrackerOption {
	return func(s *TrackerService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewTrackerService(store *TaskStore, exporter ports.ReportExporter, log *zap.Logger, opts ...TrackerOption) (*TrackerService, error) {
	if store == nil {
		return nil, errors.New("task store is nil")
	}
	if exporter == nil {
		return nil, errors.New("report exporter is nil")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}
	s := &TrackerService{
		store:    store,
		exporter: exporter,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *TrackerService) CreateTask(ctx context.Context) (entities.Task, error) {
	task := s.store.Create(ctx)
	s.log.Info("usecase: create task done", zap.String("task_id", task.ID))
	return task, nil
}

func (s *TrackerService) UpdateTask(ctx context.Context, id string, patch entities.TaskPatch) error {
	s.log.Debug("usecase: update task", zap.String("task_id", id))
	if patch.Empty() {
		return nil
	}
	if err := s.store.Update(ctx, id, patch); err != nil {
		s.log.Warn("usecase: update task failed", zap.String("task_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *TrackerService) DeleteTask(ctx context.Context, id string) error {
	s.log.Debug("usecase: delete task", zap.String("task_id", id))
	s.store.Delete(ctx, id)
	return nil
}

func (s *TrackerService) ListTasks(_ context.Context, q string) []entities.Task {
	return query.Filter(s.store.Tasks(), q)
}

func (s *TrackerService) Dashboard(_ context.Context, q string) entities.Dashboard {
	all := s.store.Tasks()
	return metrics.Dashboard(all, query.Filter(all, q), q, s.now())
}

func (s *TrackerService) Export(_ context.Context, format entities.ReportFormat) (*entities.Report, error) {
	tasks := s.store.Tasks()
	s.log.Info("usecase: export", zap.String("format", string(format)), zap.Int("tasks", len(tasks)))

	var (
		report *entities.Report
		err    error
	)
	switch format {
	case entities.ReportSpreadsheet:
		report, err = s.exporter.Spreadsheet(tasks)
	case entities.ReportPlainText:
		report, err = s.exporter.PlainText(tasks)
	default:
		return nil, exceptions.ErrUnknownReportFormat
	}
	if err != nil {
		s.log.Error("usecase: export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, err
	}
	return report, nil
}

func (s *TrackerService) Changes() <-chan struct{} {
	return s.store.Changes()
}
