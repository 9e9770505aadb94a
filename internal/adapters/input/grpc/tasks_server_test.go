package grpc_test

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"

	grpcadapter "task-tracker/internal/adapters/input/grpc"
	"task-tracker/internal/adapters/output/report"
	"task-tracker/internal/core/service"
	"task-tracker/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

var fixedNow = time.Date(2025, 11, 15, 9, 0, 0, 0, time.UTC)

func newClient(t *testing.T) *grpcadapter.Client {
	t.Helper()
	log := zap.NewNop()

	store, err := service.NewTaskStore(testutil.NewFakeSlot(), "konig_tasks_v1", log)
	require.NoError(t, err)
	store.Load(context.Background())
	tracker, err := service.NewTrackerService(store, report.NewExporter(log), log, service.WithClock(testutil.FixedClock(fixedNow)))
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	grpcadapter.RegisterTaskServiceServer(srv, grpcadapter.NewTaskServer(tracker, time.Hour, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return grpcadapter.NewClient(conn)
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestTaskServer_CreateUpdateList(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	created, err := client.CreateTask(ctx)
	require.NoError(t, err)
	id := created.GetFields()["id"].GetStringValue()
	assert.Regexp(t, `^t_[0-9a-f]{12}$`, id)
	assert.Equal(t, "Medium", created.GetFields()["priority"].GetStringValue())
	assert.Equal(t, "Pending", created.GetFields()["status"].GetStringValue())

	err = client.UpdateTask(ctx, request(t, map[string]any{
		"id":       id,
		"title":    "Cierre trimestral",
		"priority": "Alta",
		"assignee": "Luis",
		"progress": 25,
	}))
	require.NoError(t, err)

	list, err := client.ListTasks(ctx, request(t, map[string]any{"query": "cierre"}))
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 1)
	got := list.GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, "High", got["priority"].GetStringValue())
	assert.Equal(t, "Luis", got["assignee"].GetStringValue())
	assert.Equal(t, float64(25), got["progress"].GetNumberValue())

	require.NoError(t, client.DeleteTask(ctx, request(t, map[string]any{"id": id})))
	list, err = client.ListTasks(ctx, request(t, map[string]any{}))
	require.NoError(t, err)
	assert.Len(t, list.GetValues(), 3)
}

func TestTaskServer_UpdateRejectsInvalidInput(t *testing.T) {
	client := newClient(t)
	ctx := context.Background()

	err := client.UpdateTask(ctx, request(t, map[string]any{"title": "x"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = client.UpdateTask(ctx, request(t, map[string]any{"id": "t1", "priority": "Urgent"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = client.UpdateTask(ctx, request(t, map[string]any{"id": "t1", "assignee": "Pedro"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	err = client.UpdateTask(ctx, request(t, map[string]any{"id": "t1", "progress": 140}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	list, err := client.ListTasks(ctx, request(t, map[string]any{"query": "contratos"}))
	require.NoError(t, err)
	require.Len(t, list.GetValues(), 1)
	fields := list.GetValues()[0].GetStructValue().GetFields()
	assert.Equal(t, "High", fields["priority"].GetStringValue())
	assert.Equal(t, "María", fields["assignee"].GetStringValue())
}

func TestTaskServer_UpdateUnknownIDIsNoop(t *testing.T) {
	client := newClient(t)

	err := client.UpdateTask(context.Background(), request(t, map[string]any{"id": "missing", "title": "x"}))
	require.NoError(t, err)
}

func TestTaskServer_GetDashboard(t *testing.T) {
	client := newClient(t)

	d, err := client.GetDashboard(context.Background(), request(t, map[string]any{"query": "luis"}))
	require.NoError(t, err)

	fields := d.GetFields()
	assert.Equal(t, "luis", fields["query"].GetStringValue())
	assert.Len(t, fields["tasks"].GetListValue().GetValues(), 1)

	m := fields["metrics"].GetStructValue().GetFields()
	assert.Equal(t, float64(3), m["total"].GetNumberValue())
	assert.Equal(t, float64(1), m["completed"].GetNumberValue())
	assert.Equal(t, float64(1), m["overdue"].GetNumberValue())
	assert.Len(t, fields["byAssignee"].GetListValue().GetValues(), 5)
	assert.Equal(t, "2025-11-15T09:00:00Z", fields["generatedAt"].GetStringValue())
}

func TestTaskServer_ExportReport(t *testing.T) {
	client := newClient(t)

	var header metadata.MD
	out, err := client.ExportReport(context.Background(), request(t, map[string]any{"format": "pdf"}), grpc.Header(&header))
	require.NoError(t, err)

	assert.Equal(t, []string{report.PlainTextName}, header.Get(grpcadapter.ReportNameHeader))
	body := string(out.GetValue())
	assert.True(t, strings.HasPrefix(body, report.TextHeader+"\n\n"))
	assert.Contains(t, body, "Informe de ventas")
}

func TestTaskServer_ExportReportUnknownFormat(t *testing.T) {
	client := newClient(t)

	_, err := client.ExportReport(context.Background(), request(t, map[string]any{"format": "docx"}))
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestTaskServer_WatchDashboardPushesOnChange(t *testing.T) {
	client := newClient(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	watcher, err := client.WatchDashboard(ctx, request(t, map[string]any{}))
	require.NoError(t, err)

	first, err := watcher.Recv()
	require.NoError(t, err)
	assert.Equal(t, float64(3), first.GetFields()["metrics"].GetStructValue().GetFields()["total"].GetNumberValue())

	_, err = client.CreateTask(ctx)
	require.NoError(t, err)

	next, err := watcher.Recv()
	require.NoError(t, err)
	assert.Equal(t, float64(4), next.GetFields()["metrics"].GetStructValue().GetFields()["total"].GetNumberValue())
}
