// Package kv persists whole-collection JSON documents under string keys,
// mirroring the browser local-storage model the dashboard was built around.
// There is no partial write: callers always Set the full serialized value.
package kv

import (
	"context"
	"sync"
)

type Store interface {
	// Get returns the stored value for key. Absent keys report found=false
	// with a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	// Set overwrites the full value for key.
	Set(ctx context.Context, key string, value []byte) error
}

// Memory is a map-backed Store used by tests and as a fallback when no
// persistent backend is configured.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	dup := make([]byte, len(value))
	copy(dup, value)
	return dup, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	dup := make([]byte, len(value))
	copy(dup, value)
	m.entries[key] = dup
	return nil
}
