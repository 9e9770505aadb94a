package report_test

import (
	"bytes"
	"testing"

	"task-tracker/internal/adapters/output/report"
	"task-tracker/internal/core/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{report.SheetName}, f.GetSheetList())
	rows, err := f.GetRows(report.SheetName)
	require.NoError(t, err)
	return rows
}

func TestSpreadsheet_SingleTaskProgressCell(t *testing.T) {
	exp := report.NewExporter(zaptest.NewLogger(t))
	task := entities.Task{ID: "t1", Title: "Revisión de contratos", Priority: entities.PriorityHigh, Status: entities.StatusInProgress, Assignee: "María", DueDate: "2025-11-12", Progress: 40}

	rep, err := exp.Spreadsheet([]entities.Task{task})
	require.NoError(t, err)
	assert.Equal(t, "reporte_tareas.xlsx", rep.Name)

	rows := readRows(t, rep.Data)
	require.Len(t, rows, 2)
	assert.Equal(t, report.Columns, rows[0])
	assert.Equal(t, []string{"Revisión de contratos", "Alta", "En curso", "María", "2025-11-12", "40%"}, rows[1])
}

func TestSpreadsheet_MissingDueDateIsEmpty(t *testing.T) {
	exp := report.NewExporter(zaptest.NewLogger(t))
	task := entities.NewTask("t_new")

	rep, err := exp.Spreadsheet([]entities.Task{task})
	require.NoError(t, err)

	rows := readRows(t, rep.Data)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"", "Media", "Pendiente", "", "", "0%"}, rows[1])
}

func TestSpreadsheet_PreservesOrder(t *testing.T) {
	exp := report.NewExporter(zaptest.NewLogger(t))
	rep, err := exp.Spreadsheet(entities.SeedTasks())
	require.NoError(t, err)

	rows := readRows(t, rep.Data)
	require.Len(t, rows, 4)
	assert.Equal(t, "Revisión de contratos", rows[1][0])
	assert.Equal(t, "Informe de ventas", rows[2][0])
	assert.Equal(t, "Actualizar precios", rows[3][0])
}

func TestPlainText_Format(t *testing.T) {
	exp := report.NewExporter(zaptest.NewLogger(t))
	tasks := []entities.Task{
		entities.SeedTasks()[0],
		{ID: "x", Title: "Sin fecha", Priority: entities.PriorityLow, Status: entities.StatusPending},
	}

	rep, err := exp.PlainText(tasks)
	require.NoError(t, err)
	assert.Equal(t, "reporte_tareas.txt", rep.Name)
	assert.Equal(t, "text/plain; charset=utf-8", rep.ContentType)

	want := "Reporte KÖNIG | Seguimiento de Tareas\n\n" +
		"Revisión de contratos — En curso — Alta — María — Vence: 2025-11-12\n" +
		"Sin fecha — Pendiente — Baja —  — Vence: -"
	assert.Equal(t, want, string(rep.Data))
}

func TestPlainText_Empty(t *testing.T) {
	exp := report.NewExporter(zaptest.NewLogger(t))
	rep, err := exp.PlainText(nil)
	require.NoError(t, err)
	assert.Equal(t, "Reporte KÖNIG | Seguimiento de Tareas\n\n", string(rep.Data))
}
