// Package metrics derives summary counts and chart distributions from a task list.
// Every function is pure over its input.
package metrics

import (
	"time"

	"task-tracker/internal/core/domain/entities"
)

func Summarize(tasks []entities.Task, now time.Time) entities.Metrics {
	m := entities.Metrics{Total: len(tasks)}
	for _, t := range tasks {
		if t.Status == entities.StatusCompleted {
			m.Completed++
			continue
		}
		if IsOverdue(t, now) {
			m.Overdue++
		}
	}
	return m
}

// IsOverdue reports whether t has a due date strictly before now and is not completed.
func IsOverdue(t entities.Task, now time.Time) bool {
	if t.Status == entities.StatusCompleted {
		return false
	}
	due, ok := t.Due()
	return ok && due.Before(now)
}

func DistributionByStatus(tasks []entities.Task) []entities.Bucket {
	buckets := make([]entities.Bucket, len(entities.Statuses))
	index := make(map[entities.Status]int, len(entities.Statuses))
	for i, s := range entities.Statuses {
		buckets[i] = entities.Bucket{Key: string(s), Label: s.Label()}
		index[s] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Status]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

func DistributionByPriority(tasks []entities.Task) []entities.Bucket {
	buckets := make([]entities.Bucket, len(entities.Priorities))
	index := make(map[entities.Priority]int, len(entities.Priorities))
	for i, p := range entities.Priorities {
		buckets[i] = entities.Bucket{Key: string(p), Label: p.Label()}
		index[p] = i
	}
	for _, t := range tasks {
		if i, ok := index[t.Priority]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}

// DistributionByAssignee counts tasks per roster member. Tasks with no assignee, or one that
// is not on the roster, land in a trailing Unassigned bucket so the counts add up to the total.
func DistributionByAssignee(tasks []entities.Task) []entities.Bucket {
	buckets := make([]entities.Bucket, len(entities.Roster)+1)
	index := make(map[string]int, len(entities.Roster))
	for i, name := range entities.Roster {
		buckets[i] = entities.Bucket{Key: name, Label: name}
		index[name] = i
	}
	unassigned := len(entities.Roster)
	buckets[unassigned] = entities.Bucket{Key: entities.UnassignedKey, Label: entities.UnassignedLabel}
	for _, t := range tasks {
		if i, ok := index[t.Assignee]; ok {
			buckets[i].Count++
			continue
		}
		buckets[unassigned].Count++
	}
	return buckets
}

// Dashboard bundles everything the task board renders for a given search query.
// Metrics and distributions always cover the full list; only Tasks is filtered.
func Dashboard(all, filtered []entities.Task, query string, now time.Time) entities.Dashboard {
	return entities.Dashboard{
		Query:       query,
		Tasks:       filtered,
		Metrics:     Summarize(all, now),
		ByStatus:    DistributionByStatus(all),
		ByPriority:  DistributionByPriority(all),
		ByAssignee:  DistributionByAssignee(all),
		GeneratedAt: now,
	}
}
