// Package query implements free-text search over the task list.
package query

import (
	"strings"

	"task-tracker/internal/core/domain/entities"
)

// Filter keeps, in order, every task whose "title assignee" contains query, ignoring case.
// An empty query returns the tasks unchanged.
func Filter(tasks []entities.Task, query string) []entities.Task {
	if query == "" {
		return tasks
	}
	needle := strings.ToLower(query)
	out := make([]entities.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title+" "+t.Assignee), needle) {
			out = append(out, t)
		}
	}
	return out
}
