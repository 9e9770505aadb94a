package entities

import (
	"strings"

	"task-tracker/internal/core/domain/exceptions"
)

type ReportFormat string

const (
	ReportSpreadsheet ReportFormat = "xlsx"
	ReportPlainText   ReportFormat = "txt"
)

// ParseReportFormat resolves user-facing aliases. "pdf" maps to the plain-text report.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "xlsx", "excel", "spreadsheet":
		return ReportSpreadsheet, nil
	case "txt", "text", "pdf":
		return ReportPlainText, nil
	default:
		return "", exceptions.ErrUnknownReportFormat
	}
}

// Report is an export artifact ready to be handed to whoever delivers the download.
type Report struct {
	Name        string
	ContentType string
	Data        []byte
}
