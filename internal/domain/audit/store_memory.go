package audit

import (
	"context"
	"slices"
	"sync"
)

type MemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Insert(_ context.Context, e Event) error {
	m.mu.Lock()
	m.events = append(m.events, e)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) List(_ context.Context, f Filter, limit, offset int) ([]Event, int, error) {
	m.mu.RLock()
	matched := make([]Event, 0, len(m.events))
	for _, e := range m.events {
		if f.matches(e) {
			matched = append(matched, e)
		}
	}
	m.mu.RUnlock()

	slices.Reverse(matched)
	total := len(matched)
	if offset >= total {
		return []Event{}, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}
