package query_test

import (
	"testing"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/query"

	"github.com/stretchr/testify/assert"
)

func sampleTasks() []entities.Task {
	return []entities.Task{
		{ID: "a", Title: "Revisión de contratos", Assignee: "María"},
		{ID: "b", Title: "Informe de ventas", Assignee: "Luis"},
	}
}

func TestFilter_MatchesAssigneeIgnoringCase(t *testing.T) {
	got := query.Filter(sampleTasks(), "maría")
	assert.Equal(t, []entities.Task{sampleTasks()[0]}, got)

	got = query.Filter(sampleTasks(), "MARÍA")
	assert.Equal(t, []entities.Task{sampleTasks()[0]}, got)
}

func TestFilter_EmptyQueryKeepsOrder(t *testing.T) {
	assert.Equal(t, sampleTasks(), query.Filter(sampleTasks(), ""))
}

func TestFilter_MatchesTitleSubstring(t *testing.T) {
	got := query.Filter(sampleTasks(), "VENTAS")
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilter_SpansTitleAndAssignee(t *testing.T) {
	got := query.Filter(sampleTasks(), "ventas luis")
	assert.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestFilter_NoMatch(t *testing.T) {
	got := query.Filter(sampleTasks(), "precios")
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
