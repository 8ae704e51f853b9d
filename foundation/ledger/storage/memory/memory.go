// Package memory implements the ability to read and write chain files to
// memory using a map.
package memory

import (
	"fmt"
	"io/fs"
	"sync"
)

// Memory represents the storage implementation for reading and writing chain
// files in memory. This implements the ledger.Storage interface.
type Memory struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// New constructs a Memory value for use.
func New() *Memory {
	return &Memory{
		files: make(map[string][]byte),
	}
}

// Read returns a copy of the named content.
func (m *Memory) Read(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, exists := m.files[name]
	if !exists {
		return nil, fmt.Errorf("read %s: %w", name, fs.ErrNotExist)
	}

	return append([]byte(nil), data...), nil
}

// Write replaces the named content with a copy of data.
func (m *Memory) Write(name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[name] = append([]byte(nil), data...)
	return nil
}

// Reset will clear out everything that was written.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files = make(map[string][]byte)
}
