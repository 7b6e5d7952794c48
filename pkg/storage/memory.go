package storage

import (
	"context"
	"sort"
	"sync"
)

// Memory is an in-process Store.
// This implementation is intended for testing only.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte

	// WriteErr, when set, is returned (wrapped) by every Write.
	WriteErr error
}

// NewMemory creates an empty Memory store.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Put stores data under name without going through Write.
func (m *Memory) Put(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
}

// Read returns a copy of the named resource.
func (m *Memory) Read(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return append([]byte(nil), data...), nil
}

// Write stores a copy of data under name.
func (m *Memory) Write(ctx context.Context, name string, data []byte) error {
	if m.WriteErr != nil {
		return &WriteError{Name: name, Cause: m.WriteErr}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
	return nil
}

// Exists reports whether name has been stored.
func (m *Memory) Exists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[name]
	return ok
}

// Names returns the stored resource names in sorted order.
func (m *Memory) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
