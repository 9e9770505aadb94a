package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"task-tracker/internal/core/domain/entities"
	"task-tracker/internal/core/domain/exceptions"
	"task-tracker/internal/core/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const idPrefix = "t_"

// TaskStore owns the ordered task collection and mirrors it into a durable slot after
// every mutation. Persistence is best-effort: write failures are logged and the in-memory
// collection stays authoritative.
type TaskStore struct {
	mu      sync.Mutex
	slot    ports.SlotStore
	key     string
	tasks   []entities.Task
	changed chan struct{}
	newID   func() string
	log     *zap.Logger
}

type StoreOption func(*TaskStore)

func WithIDGenerator(fn func() string) StoreOption {
	return func(s *TaskStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

func NewTaskStore(slot ports.SlotStore, key string, log *zap.Logger, opts ...StoreOption) (*TaskStore, error) {
	if slot == nil {
		return nil, errors.New("slot store is nil")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("slot key is empty")
	}
	s := &TaskStore{
		slot:    slot,
		key:     key,
		tasks:   []entities.Task{},
		changed: make(chan struct{}),
		newID:   NewTaskID,
		log:     log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewTaskID returns "t_" followed by 12 hex characters of a random UUID.
func NewTaskID() string {
	return idPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// Load replaces the collection with what the slot holds. Any failure to read or decode,
// including an empty slot, falls back to the seed tasks.
func (s *TaskStore) Load(ctx context.Context) []entities.Task {
	tasks, err := s.restore(ctx)
	switch {
	case err == nil:
		s.log.Info("store: restored tasks", zap.String("key", s.key), zap.Int("tasks", len(tasks)))
	case errors.Is(err, exceptions.ErrSlotEmpty):
		s.log.Info("store: slot empty, using seed tasks", zap.String("key", s.key))
		tasks = entities.SeedTasks()
	default:
		s.log.Warn("store: restore failed, using seed tasks", zap.String("key", s.key), zap.Error(err))
		tasks = entities.SeedTasks()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = tasks
	s.notifyLocked()
	return slices.Clone(tasks)
}

func (s *TaskStore) restore(ctx context.Context) ([]entities.Task, error) {
	raw, err := s.slot.Read(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return DecodeTasks(raw)
}

// Persist writes tasks to the slot. Errors are logged, never returned.
func (s *TaskStore) Persist(ctx context.Context, tasks []entities.Task) {
	raw, err := EncodeTasks(tasks)
	if err != nil {
		s.log.Warn("store: encode tasks failed", zap.Error(err))
		return
	}
	if err := s.slot.Write(ctx, s.key, raw); err != nil {
		s.log.Warn("store: persist failed", zap.String("key", s.key), zap.Error(err))
		return
	}
	s.log.Debug("store: persisted", zap.String("key", s.key), zap.Int("tasks", len(tasks)))
}

func (s *TaskStore) Create(ctx context.Context) entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := entities.NewTask(s.nextIDLocked())
	s.tasks = slices.Insert(s.tasks, 0, task)
	s.commitLocked(ctx)
	s.log.Debug("store: task created", zap.String("task_id", task.ID))
	return task
}

// Update merges patch into the task with the given id. An unknown id is ignored.
// An invalid patch is rejected and leaves the task as it was.
func (s *TaskStore) Update(ctx context.Context, id string, patch entities.TaskPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.log.Debug("store: update of unknown task ignored", zap.String("task_id", id))
		return nil
	}
	updated, err := patch.Apply(s.tasks[i])
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	s.tasks[i] = updated
	s.commitLocked(ctx)
	return nil
}

// Delete removes the task with the given id. An unknown id is ignored.
func (s *TaskStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		s.log.Debug("store: delete of unknown task ignored", zap.String("task_id", id))
		return
	}
	s.tasks = slices.Delete(s.tasks, i, i+1)
	s.commitLocked(ctx)
}

// Tasks returns a copy of the current collection.
func (s *TaskStore) Tasks() []entities.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tasks)
}

// Changes returns a channel that is closed by the next mutation or Load.
func (s *TaskStore) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

func (s *TaskStore) commitLocked(ctx context.Context) {
	s.Persist(ctx, s.tasks)
	s.notifyLocked()
}

func (s *TaskStore) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

func (s *TaskStore) indexLocked(id string) int {
	return slices.IndexFunc(s.tasks, func(t entities.Task) bool { return t.ID == id })
}

func (s *TaskStore) nextIDLocked() string {
	id := s.newID()
	for n := 2; s.indexLocked(id) >= 0; n++ {
		id = fmt.Sprintf("%s%d", s.newID(), n)
	}
	return id
}
