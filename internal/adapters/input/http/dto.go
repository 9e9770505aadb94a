package http

import (
	"task-tracker/internal/core/domain/entities"
)

// TaskPatchRequest is the body of PATCH /api/tasks/:id. Absent fields are left unchanged.
type TaskPatchRequest struct {
	Title    *string `json:"title"`
	Priority *string `json:"priority"`
	Status   *string `json:"status"`
	Assignee *string `json:"assignee"`
	DueDate  *string `json:"dueDate"`
	Progress *int    `json:"progress"`
}

func (r TaskPatchRequest) ToEntity() (entities.TaskPatch, error) {
	patch := entities.TaskPatch{
		Title:    r.Title,
		Assignee: r.Assignee,
		DueDate:  r.DueDate,
		Progress: r.Progress,
	}
	if r.Priority != nil {
		p, err := entities.ParsePriority(*r.Priority)
		if err != nil {
			return entities.TaskPatch{}, err
		}
		patch.Priority = &p
	}
	if r.Status != nil {
		s, err := entities.ParseStatus(*r.Status)
		if err != nil {
			return entities.TaskPatch{}, err
		}
		patch.Status = &s
	}
	return patch, nil
}
