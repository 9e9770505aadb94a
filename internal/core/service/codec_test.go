package service_test

import (
	"encoding/json"
	"testing"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/core/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTasks_WritesVersionedEnvelope(t *testing.T) {
	raw, err := service.EncodeTasks(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"tasks":[]}`, string(raw))

	raw, err = service.EncodeTasks(entities.SeedTasks()[:1])
	require.NoError(t, err)

	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, `1`, string(env["version"]))
	assert.JSONEq(t, `[{"id":"t1","title":"Revisión de contratos","priority":"High","status":"InProgress","assignee":"María","dueDate":"2025-11-12","progress":40}]`, string(env["tasks"]))
}

func TestDecodeTasks_MigratesLegacyArray(t *testing.T) {
	legacy := `[
		{"id":"t_abc1234","titulo":"Nueva tarea","prioridad":"Media","estado":"Pendiente","responsable":"","vencimiento":"","progreso":0},
		{"id":"t2","titulo":"Informe de ventas","prioridad":"Media","estado":"Completada","responsable":"Luis","vencimiento":"2025-10-30","progreso":100}
	]`
	tasks, err := service.DecodeTasks([]byte(legacy))
	require.NoError(t, err)
	assert.Equal(t, []entities.Task{
		{ID: "t_abc1234", Title: "Nueva tarea", Priority: entities.PriorityMedium, Status: entities.StatusPending},
		{ID: "t2", Title: "Informe de ventas", Priority: entities.PriorityMedium, Status: entities.StatusCompleted, Assignee: "Luis", DueDate: "2025-10-30", Progress: 100},
	}, tasks)
}

func TestDecodeTasks_Rejects(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want error
	}{
		{"blank", "  ", exceptions.ErrSlotEmpty},
		{"future version", `{"version":2,"tasks":[]}`, exceptions.ErrUnsupportedSlotVersion},
		{"missing version", `{"tasks":[]}`, exceptions.ErrUnsupportedSlotVersion},
		{"bad status", `{"version":1,"tasks":[{"id":"a","priority":"Low","status":"Done"}]}`, exceptions.ErrInvalidStatus},
		{"off roster", `{"version":1,"tasks":[{"id":"a","priority":"Low","status":"Pending","assignee":"Pedro"}]}`, exceptions.ErrInvalidAssignee},
		{"bad date", `{"version":1,"tasks":[{"id":"a","priority":"Low","status":"Pending","dueDate":"mañana"}]}`, exceptions.ErrInvalidDueDate},
		{"progress", `{"version":1,"tasks":[{"id":"a","priority":"Low","status":"Pending","progress":150}]}`, exceptions.ErrInvalidProgress},
		{"duplicate id", `{"version":1,"tasks":[{"id":"a","priority":"Low","status":"Pending"},{"id":"a","priority":"Low","status":"Pending"}]}`, exceptions.ErrDuplicateTaskID},
		{"legacy bad label", `[{"id":"a","prioridad":"Urgente","estado":"Pendiente"}]`, exceptions.ErrInvalidPriority},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.DecodeTasks([]byte(tc.raw))
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDecodeTasks_RejectsShapeMismatch(t *testing.T) {
	for _, raw := range []string{`{"version":1,"tasks":{}}`, `{"version":1,"items":[]}`, `"hello"`, `{`} {
		_, err := service.DecodeTasks([]byte(raw))
		assert.Error(t, err, raw)
	}
}
