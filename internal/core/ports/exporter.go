package ports

import "task-tracker/internal/core/domain/entities"

type ReportExporter interface {
	Spreadsheet(tasks []entities.Task) (*entities.Report, error)
	PlainText(tasks []entities.Task) (*entities.Report, error)
}
