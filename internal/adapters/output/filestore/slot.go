// Package filestore keeps slot values as JSON files in a directory, one file per key.
//
// Writes are atomic: the value goes to a temp file that is synced and renamed over the
// previous one, so a crash never leaves a half-written slot behind.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"task-tracker/internal/core/domain/exceptions"

	"go.uber.org/zap"
)

type SlotStore struct {
	dir string
	log *zap.Logger
}

func NewSlotStore(dir string, log *zap.Logger) (*SlotStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("slot dir is required")
	}
	if log == nil {
		return nil, errors.New("logger is nil")
	}
	return &SlotStore{dir: dir, log: log}, nil
}

func (s *SlotStore) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

func (s *SlotStore) Read(_ context.Context, key string) ([]byte, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, exceptions.ErrSlotEmpty
		}
		s.log.Error("slot: read failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	return data, nil
}

func (s *SlotStore) Write(_ context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, value, 0o644); err != nil {
		s.log.Error("slot: write failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("write slot %s: %w", key, err)
	}
	return nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}
