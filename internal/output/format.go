// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"task-tracker/internal/core/domain/entities"
)

const (
	// Separator is the rule printed between dashboard sections.
	Separator = "------------"

	placeholder = "-"
)

// FormatTask writes one task per line:
// "{ID}  {STATUS}  {PRIORITY}  {ASSIGNEE}  {DUE}  {PROGRESS}%  {TITLE}"
func FormatTask(w io.Writer, task entities.Task) {
	fmt.Fprintf(w, "%-16s  %-10s  %-5s  %-10s  %-10s  %3d%%  %s\n",
		task.ID,
		task.Status.Label(),
		task.Priority.Label(),
		orPlaceholder(task.Assignee),
		orPlaceholder(task.DueDate),
		task.Progress,
		normalizeTitle(task.Title),
	)
}

func FormatTasks(w io.Writer, tasks []entities.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "no tasks")
		return
	}
	for _, task := range tasks {
		FormatTask(w, task)
	}
}

// FormatDashboard writes the headline counts followed by each distribution.
func FormatDashboard(w io.Writer, d entities.Dashboard) {
	fmt.Fprintf(w, "total: %d  completed: %d  overdue: %d\n", d.Metrics.Total, d.Metrics.Completed, d.Metrics.Overdue)
	formatBuckets(w, "by status", d.ByStatus)
	formatBuckets(w, "by priority", d.ByPriority)
	formatBuckets(w, "by assignee", d.ByAssignee)
	if d.Query != "" {
		fmt.Fprintln(w, Separator)
		fmt.Fprintf(w, "matching %q: %d\n", d.Query, len(d.Tasks))
	}
}

func formatBuckets(w io.Writer, title string, buckets []entities.Bucket) {
	fmt.Fprintln(w, Separator)
	fmt.Fprintln(w, title)
	for _, b := range buckets {
		fmt.Fprintf(w, "    %-12s %4d\n", b.Label, b.Count)
	}
}

// normalizeTitle replaces newlines with spaces; blank titles become "(untitled)".
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func orPlaceholder(s string) string {
	if s == "" {
		return placeholder
	}
	return s
}
