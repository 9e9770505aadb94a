// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"task-tracker/internal/core/domain/exceptions"
)

// FakeSlot is an in-memory ports.SlotStore for tests.
type FakeSlot struct {
	mu     sync.Mutex
	values map[string][]byte
	writes int

	// Error injection for testing
	ReadErr  error
	WriteErr error
}

func NewFakeSlot() *FakeSlot {
	return &FakeSlot{values: make(map[string][]byte)}
}

// Seed stores raw bytes under key without counting a write.
func (f *FakeSlot) Seed(key string, value []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = append([]byte(nil), value...)
}

// Value returns what is stored under key.
func (f *FakeSlot) Value(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return append([]byte(nil), v...), ok
}

// Writes returns the number of successful writes.
func (f *FakeSlot) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

func (f *FakeSlot) Read(_ context.Context, key string) ([]byte, error) {
	if f.ReadErr != nil {
		return nil, f.ReadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	if !ok {
		return nil, exceptions.ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

func (f *FakeSlot) Write(_ context.Context, key string, value []byte) error {
	if f.WriteErr != nil {
		return f.WriteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = append([]byte(nil), value...)
	f.writes++
	return nil
}

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// SequentialIDs returns an id generator yielding prefix1, prefix2, ...
func SequentialIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return prefix + strconv.Itoa(n)
	}
}
