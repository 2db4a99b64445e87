package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a homogeneous collection of records as a single JSON file,
// keyed by one designated field. Every operation is a whole-collection
// read-modify-write under one mutex, so no partial state is observable
// between calls.
type Store[T any, K comparable] struct {
	path string
	key  func(T) K
	mu   sync.Mutex
}

func NewStore[T any, K comparable](path string, key func(T) K) *Store[T, K] {
	return &Store[T, K]{path: path, key: key}
}

// GetAll returns every record in storage order. A missing file is an empty
// collection, not an error.
func (s *Store[T, K]) GetAll(ctx context.Context) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// GetByID returns the record whose key equals id. Absence is reported through
// the bool, not as an error.
func (s *Store[T, K]) GetByID(ctx context.Context, id K) (*T, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return nil, false, err
	}
	for i := range items {
		if s.key(items[i]) == id {
			item := items[i]
			return &item, true, nil
		}
	}
	return nil, false, nil
}

// Upsert replaces the record with the same key in place, preserving its
// position, or appends it. The whole collection is durably persisted before
// Upsert returns.
func (s *Store[T, K]) Upsert(ctx context.Context, item T) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return err
	}

	id := s.key(item)
	replaced := false
	for i := range items {
		if s.key(items[i]) == id {
			items[i] = item
			replaced = true
			break
		}
	}
	if !replaced {
		items = append(items, item)
	}
	return s.writeLocked(items)
}

// Delete removes all records matching id and reports whether any were removed.
func (s *Store[T, K]) Delete(ctx context.Context, id K) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return false, err
	}

	kept := items[:0]
	for i := range items {
		if s.key(items[i]) != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	return true, s.writeLocked(kept)
}

func (s *Store[T, K]) readLocked() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read %s: %w", filepath.Base(s.path), err)
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(s.path), err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeLocked stages the collection to a temporary file, flushes it, and
// atomically promotes it to the canonical path. A crash mid-write leaves the
// previous durable state intact.
func (s *Store[T, K]) writeLocked(items []T) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(s.path), err)
	}

	tmp := s.path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("stage %s: %w", filepath.Base(s.path), err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("stage %s: %w", filepath.Base(s.path), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", filepath.Base(s.path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("stage %s: %w", filepath.Base(s.path), err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("promote %s: %w", filepath.Base(s.path), err)
	}
	return nil
}
