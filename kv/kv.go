// Package kv provides the key-value stores a cartera repository persists its
// lists to.
//
// Every store returns an error wrapping ErrNotExist from Get when the key was
// never set.
package kv

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"sync"
)

// ErrNotExist is wrapped by the error returned for a missing key.
var ErrNotExist = fs.ErrNotExist

// Memory is a store kept in memory, lost when the process exits.
type Memory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, ErrNotExist)
	}
	return slices.Clone(v), nil
}

func (m *Memory) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = slices.Clone(value)
	return nil
}

// checkKey rejects keys that could not be used as a file name.
func checkKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}
