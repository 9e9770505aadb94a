// Package report renders the task list into downloadable artifacts.
package report

import (
	"fmt"
	"strings"

	"task-tracker/internal/core/domain/entities"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	SpreadsheetName = "reporte_tareas.xlsx"
	PlainTextName   = "reporte_tareas.txt"
	SheetName       = "Tareas"
	TextHeader      = "Reporte KÖNIG | Seguimiento de Tareas"

	spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	plainTextContentType   = "text/plain; charset=utf-8"
	fieldSeparator         = " — "
)

// Columns is the fixed spreadsheet header.
var Columns = []string{"Título", "Prioridad", "Estado", "Responsable", "Vencimiento", "Progreso"}

type Exporter struct {
	log *zap.Logger
}

func NewExporter(log *zap.Logger) *Exporter {
	if log == nil {
		panic("logger is nil")
	}
	return &Exporter{log: log}
}

func (e *Exporter) Spreadsheet(tasks []entities.Task) (*entities.Report, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			e.log.Warn("report: close workbook failed", zap.Error(err))
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, t := range tasks {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{
			t.Title,
			t.Priority.Label(),
			t.Status.Label(),
			t.Assignee,
			t.DueDate,
			fmt.Sprintf("%d%%", t.Progress),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	e.log.Debug("report: spreadsheet rendered", zap.Int("rows", len(tasks)), zap.Int("bytes", buf.Len()))
	return &entities.Report{
		Name:        SpreadsheetName,
		ContentType: spreadsheetContentType,
		Data:        buf.Bytes(),
	}, nil
}

func (e *Exporter) PlainText(tasks []entities.Task) (*entities.Report, error) {
	lines := make([]string, len(tasks))
	for i, t := range tasks {
		lines[i] = Line(t)
	}
	body := TextHeader + "\n\n" + strings.Join(lines, "\n")
	e.log.Debug("report: plain text rendered", zap.Int("lines", len(tasks)))
	return &entities.Report{
		Name:        PlainTextName,
		ContentType: plainTextContentType,
		Data:        []byte(body),
	}, nil
}

// Line formats one task for the plain-text report.
func Line(t entities.Task) string {
	due := t.DueDate
	if due == "" {
		due = "-"
	}
	return strings.Join([]string{
		t.Title,
		t.Status.Label(),
		t.Priority.Label(),
		t.Assignee,
		"Vence: " + due,
	}, fieldSeparator)
}
