package multierror

import (
	"fmt"
	"strings"
	"sync"
)

// Error combines errors keyed by their origin. Keys keep the order in which
// they were first added, so the message is stable across calls.
type Error[T comparable] struct {
	mu     sync.Mutex
	keys   []T
	errors map[T]error
}

func New[T comparable]() *Error[T] {
	return &Error[T]{
		errors: make(map[T]error),
	}
}

func (m *Error[T]) Error() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, fmt.Sprintf("%v: %s", k, m.errors[k]))
	}

	return strings.Join(parts, "; ")
}

// Unwrap returns the collected errors, so errors.Is and errors.As can look
// through the combined error.
func (m *Error[T]) Unwrap() []error {
	m.mu.Lock()
	defer m.mu.Unlock()

	errs := make([]error, 0, len(m.keys))
	for _, k := range m.keys {
		errs = append(errs, m.errors[k])
	}

	return errs
}

func (m *Error[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.keys)
}

// Add records err under key. Nil errors are ignored. A repeated key replaces
// the previous error but keeps its position.
func (m *Error[T]) Add(key T, err error) {
	if err == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.errors[key]; !ok {
		m.keys = append(m.keys, key)
	}

	m.errors[key] = err
}

func (m *Error[T]) Get(key T) (error, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	err, ok := m.errors[key]

	return err, ok
}

// Keys returns the keys in the order they were added.
func (m *Error[T]) Keys() []T {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys := make([]T, len(m.keys))
	copy(keys, m.keys)

	return keys
}

// First returns the earliest added error.
func (m *Error[T]) First() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.keys) == 0 {
		return nil
	}

	return m.errors[m.keys[0]]
}

// Combined returns the Error if it contains any errors, nil otherwise.
func (m *Error[T]) Combined() error {
	if m.Len() == 0 {
		return nil
	}

	return m
}
