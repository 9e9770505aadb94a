package service

import (
	"bytes"
	"encoding/json"
	"fmt"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"
)

const slotVersion = 1

type slotEnvelope struct {
	Version int             `json:"version"`
	Tasks   []entities.Task `json:"tasks"`
}

// legacyTask is the unversioned shape written by the first dashboard: a bare array with
// Spanish keys and display labels as enum values.
type legacyTask struct {
	ID          string `json:"id"`
	Titulo      string `json:"titulo"`
	Prioridad   string `json:"prioridad"`
	Estado      string `json:"estado"`
	Responsable string `json:"responsable"`
	Vencimiento string `json:"vencimiento"`
	Progreso    int    `json:"progreso"`
}

func EncodeTasks(tasks []entities.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []entities.Task{}
	}
	return json.Marshal(slotEnvelope{Version: slotVersion, Tasks: tasks})
}

// DecodeTasks parses a slot value, migrating the legacy shape, and rejects any collection
// that breaks the task invariants.
func DecodeTasks(raw []byte) ([]entities.Task, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, exceptions.ErrSlotEmpty
	}

	var tasks []entities.Task
	if raw[0] == '[' {
		migrated, err := decodeLegacy(raw)
		if err != nil {
			return nil, err
		}
		tasks = migrated
	} else {
		var env slotEnvelope
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&env); err != nil {
			return nil, fmt.Errorf("decode slot: %w", err)
		}
		if env.Version != slotVersion {
			return nil, fmt.Errorf("%w: %d", exceptions.ErrUnsupportedSlotVersion, env.Version)
		}
		tasks = env.Tasks
	}
	if tasks == nil {
		tasks = []entities.Task{}
	}

	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if _, dup := seen[t.ID]; dup || t.ID == "" {
			return nil, fmt.Errorf("task %d: %w: %q", i, exceptions.ErrDuplicateTaskID, t.ID)
		}
		seen[t.ID] = struct{}{}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %q: %w", t.ID, err)
		}
	}
	return tasks, nil
}

func decodeLegacy(raw []byte) ([]entities.Task, error) {
	var legacy []legacyTask
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("decode legacy slot: %w", err)
	}
	tasks := make([]entities.Task, 0, len(legacy))
	for _, l := range legacy {
		priority, err := entities.ParsePriority(l.Prioridad)
		if err != nil {
			return nil, fmt.Errorf("legacy task %q: %w", l.ID, err)
		}
		status, err := entities.ParseStatus(l.Estado)
		if err != nil {
			return nil, fmt.Errorf("legacy task %q: %w", l.ID, err)
		}
		tasks = append(tasks, entities.Task{
			ID:       l.ID,
			Title:    l.Titulo,
			Priority: priority,
			Status:   status,
			Assignee: l.Responsable,
			DueDate:  l.Vencimiento,
			Progress: l.Progreso,
		})
	}
	return tasks, nil
}
