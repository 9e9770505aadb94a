package ports

import (
	"context"

	"task-tracker/internal/core/domain/entities"
)

type TaskUseCases interface {
	CreateTask(ctx context.Context) (entities.Task, error)
	UpdateTask(ctx context.Context, id string, patch entities.TaskPatch) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, query string) []entities.Task
	Dashboard(ctx context.Context, query string) entities.Dashboard
	Export(ctx context.Context, format entities.ReportFormat) (*entities.Report, error)
	Changes() <-chan struct{}
}
