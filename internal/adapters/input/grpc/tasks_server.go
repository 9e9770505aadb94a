package grpc

import (
	"context"
	"strings"
	"time"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/ports"
	"task-tracker/internal/mapper"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const defaultWatchHeartbeat = 30 * time.Second

type TaskServer struct {
	service   ports.TaskUseCases
	heartbeat time.Duration
	log       *zap.Logger
}

var _ TaskServiceServer = (*TaskServer)(nil)

func NewTaskServer(service ports.TaskUseCases, heartbeat time.Duration, log *zap.Logger) *TaskServer {
	if log == nil {
		panic("logger is nil")
	}
	if service == nil {
		log.Fatal("task service is nil")
	}
	if heartbeat <= 0 {
		heartbeat = defaultWatchHeartbeat
	}
	return &TaskServer{
		service:   service,
		heartbeat: heartbeat,
		log:       log,
	}
}

func (s *TaskServer) CreateTask(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	s.log.Info("grpc: create task")
	task, err := s.service.CreateTask(ctx)
	if err != nil {
		s.log.Error("grpc: create task failed", zap.Error(err))
		return nil, mapper.Error(err)
	}
	s.log.Info("grpc: create task done", zap.String("task_id", task.ID))
	return mapper.Task(task), nil
}

func (s *TaskServer) UpdateTask(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := requireID(req)
	if err != nil {
		s.log.Warn("grpc: update task validation failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("grpc: update task", zap.String("task_id", id))

	patch, err := mapper.Patch(req)
	if err != nil {
		s.log.Warn("grpc: update task mapping failed", zap.String("task_id", id), zap.Error(err))
		return nil, mapper.Error(err)
	}
	if err := s.service.UpdateTask(ctx, id, patch); err != nil {
		s.log.Warn("grpc: update task failed", zap.String("task_id", id), zap.Error(err))
		return nil, mapper.Error(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *TaskServer) DeleteTask(ctx context.Context, req *structpb.Struct) (*emptypb.Empty, error) {
	id, err := requireID(req)
	if err != nil {
		s.log.Warn("grpc: delete task validation failed", zap.Error(err))
		return nil, err
	}
	s.log.Info("grpc: delete task", zap.String("task_id", id))

	if err := s.service.DeleteTask(ctx, id); err != nil {
		s.log.Error("grpc: delete task failed", zap.String("task_id", id), zap.Error(err))
		return nil, mapper.Error(err)
	}
	return &emptypb.Empty{}, nil
}

func (s *TaskServer) ListTasks(ctx context.Context, req *structpb.Struct) (*structpb.ListValue, error) {
	query := mapper.StringField(req, "query")
	tasks := s.service.ListTasks(ctx, query)
	s.log.Info("grpc: list tasks done", zap.String("query", query), zap.Int("tasks", len(tasks)))
	return mapper.Tasks(tasks), nil
}

func (s *TaskServer) GetDashboard(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query := mapper.StringField(req, "query")
	dashboard := s.service.Dashboard(ctx, query)
	s.log.Info("grpc: get dashboard done",
		zap.String("query", query),
		zap.Int("total", dashboard.Metrics.Total),
		zap.Int("overdue", dashboard.Metrics.Overdue),
	)
	return mapper.Dashboard(dashboard), nil
}

// ExportReport returns the report body. The download name and content type travel in
// the response header.
func (s *TaskServer) ExportReport(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	raw := mapper.StringField(req, "format")
	s.log.Info("grpc: export report", zap.String("format", raw))

	format, err := entities.ParseReportFormat(raw)
	if err != nil {
		s.log.Warn("grpc: export report validation failed", zap.String("format", raw), zap.Error(err))
		return nil, mapper.Error(err)
	}
	report, err := s.service.Export(ctx, format)
	if err != nil {
		s.log.Error("grpc: export report failed", zap.String("format", raw), zap.Error(err))
		return nil, mapper.Error(err)
	}

	md := metadata.Pairs(ReportNameHeader, report.Name, ReportContentTypeHeader, report.ContentType)
	if err := grpc.SetHeader(ctx, md); err != nil {
		s.log.Warn("grpc: export report set header failed", zap.Error(err))
	}
	s.log.Info("grpc: export report done", zap.String("name", report.Name), zap.Int("bytes", len(report.Data)))
	return wrapperspb.Bytes(report.Data), nil
}

// WatchDashboard sends the dashboard once, then again after every mutation and on each
// heartbeat, until the client goes away.
func (s *TaskServer) WatchDashboard(req *structpb.Struct, stream DashboardStream) error {
	ctx := stream.Context()
	query := mapper.StringField(req, "query")
	streamID := nextStreamID()
	startedAt := time.Now()
	var sent int

	s.log.Info("grpc: watch dashboard started", zap.Uint64("stream_id", streamID), zap.String("query", query))

	timer := time.NewTimer(s.heartbeat)
	defer timer.Stop()

	for {
		changes := s.service.Changes()
		if err := stream.Send(mapper.Dashboard(s.service.Dashboard(ctx, query))); err != nil {
			return s.finishWatch(err, streamID, sent, startedAt)
		}
		sent++

		select {
		case <-ctx.Done():
			return s.finishWatch(ctx.Err(), streamID, sent, startedAt)
		case <-changes:
		case <-timer.C:
		}
		resetTimer(timer, s.heartbeat)
	}
}

func requireID(req *structpb.Struct) (string, error) {
	id := strings.TrimSpace(mapper.StringField(req, "id"))
	if id == "" {
		return "", status.Error(codes.InvalidArgument, "task id is required")
	}
	return id, nil
}
