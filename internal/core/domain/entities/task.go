package entities

import (
	"strings"
	"time"

	"task-tracker/internal/core/domain/exceptions"
)

// DateLayout is the calendar date format used for due dates.
const DateLayout = "2006-01-02"

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Priorities lists every priority in declaration order.
var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

var priorityLabels = map[Priority]string{
	PriorityHigh:   "Alta",
	PriorityMedium: "Media",
	PriorityLow:    "Baja",
}

func (p Priority) Label() string {
	return priorityLabels[p]
}

func (p Priority) Valid() bool {
	_, ok := priorityLabels[p]
	return ok
}

// ParsePriority accepts the canonical value or its display label, case-insensitively.
func ParsePriority(s string) (Priority, error) {
	s = strings.TrimSpace(s)
	for _, p := range Priorities {
		if strings.EqualFold(s, string(p)) || strings.EqualFold(s, p.Label()) {
			return p, nil
		}
	}
	return "", exceptions.ErrInvalidPriority
}

type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in declaration order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

var statusLabels = map[Status]string{
	StatusPending:    "Pendiente",
	StatusInProgress: "En curso",
	StatusCompleted:  "Completada",
}

func (s Status) Label() string {
	return statusLabels[s]
}

func (s Status) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStatus accepts the canonical value or its display label, case-insensitively.
func ParseStatus(s string) (Status, error) {
	s = strings.TrimSpace(s)
	for _, st := range Statuses {
		if strings.EqualFold(s, string(st)) || strings.EqualFold(s, st.Label()) {
			return st, nil
		}
	}
	return "", exceptions.ErrInvalidStatus
}

type Task struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Status   Status   `json:"status"`
	Assignee string   `json:"assignee"`
	DueDate  string   `json:"dueDate"`
	Progress int      `json:"progress"`
}

// NewTask returns a task with the defaults used by the "add" intent.
func NewTask(id string) Task {
	return Task{
		ID:       id,
		Priority: PriorityMedium,
		Status:   StatusPending,
	}
}

func (t Task) Validate() error {
	if !t.Priority.Valid() {
		return exceptions.ErrInvalidPriority
	}
	if !t.Status.Valid() {
		return exceptions.ErrInvalidStatus
	}
	if t.Assignee != "" && !OnRoster(t.Assignee) {
		return exceptions.ErrInvalidAssignee
	}
	if _, err := ParseDueDate(t.DueDate); err != nil {
		return err
	}
	if t.Progress < 0 || t.Progress > 100 {
		return exceptions.ErrInvalidProgress
	}
	return nil
}

// Due returns the due date at UTC midnight. ok is false when no due date is set.
func (t Task) Due() (due time.Time, ok bool) {
	d, err := ParseDueDate(t.DueDate)
	if err != nil || d == nil {
		return time.Time{}, false
	}
	return *d, true
}

// ParseDueDate parses a YYYY-MM-DD date. An empty string means "no due date" and yields nil.
func ParseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, exceptions.ErrInvalidDueDate
	}
	return &d, nil
}

// TaskPatch is a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Title    *string
	Priority *Priority
	Status   *Status
	Assignee *string
	DueDate  *string
	Progress *int
}

func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Priority == nil && p.Status == nil &&
		p.Assignee == nil && p.DueDate == nil && p.Progress == nil
}

// Apply returns t with the patch merged in. The result is validated before it is returned.
func (p TaskPatch) Apply(t Task) (Task, error) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Assignee != nil {
		t.Assignee = strings.TrimSpace(*p.Assignee)
	}
	if p.DueDate != nil {
		t.DueDate = strings.TrimSpace(*p.DueDate)
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}
	if err := t.Validate(); err != nil {
		return Task{}, err
	}
	return t, nil
}
