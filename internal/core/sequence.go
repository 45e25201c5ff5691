package core

import (
	"fmt"
	"sync"
)

// SequenceAllocator issues human-readable task codes of the form KEY-N,
// with an independent monotonic counter per normalized project key.
type SequenceAllocator interface {
	// Next validates key, increments its counter, and returns the new code.
	Next(key string) (string, error)
	// Peek validates key and returns its current counter without allocating.
	Peek(key string) (int, error)
}

// memorySequenceAllocator implements SequenceAllocator with an in-memory
// per-key counter map. Counters start at 0 for unseen keys, never decrease,
// and are never reused even when tasks are later removed.
type memorySequenceAllocator struct {
	mu       sync.Mutex
	counters map[string]int
}

// NewSequenceAllocator creates a SequenceAllocator with all counters at zero.
func NewSequenceAllocator() SequenceAllocator {
	return &memorySequenceAllocator{
		counters: make(map[string]int),
	}
}

func (a *memorySequenceAllocator) Next(key string) (string, error) {
	normalized, err := NormalizeProjectKey(key)
	if err != nil {
		return "", err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	next := a.counters[normalized] + 1
	a.counters[normalized] = next
	return fmt.Sprintf("%s-%d", normalized, next), nil
}

func (a *memorySequenceAllocator) Peek(key string) (int, error) {
	normalized, err := NormalizeProjectKey(key)
	if err != nil {
		return 0, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.counters[normalized], nil
}
