package notifications

import (
	"errors"
	"slices"

	"hrportal/internal/platform/store"
)

type MemoryStore struct {
	items *store.Collection[Notification]
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: store.NewCollection[Notification](nil)}
}

func (m *MemoryStore) Create(n Notification) error {
	return m.items.Insert(n.ID, n)
}

// ListByUser returns newest first.
func (m *MemoryStore) ListByUser(userID string, unreadOnly bool) []Notification {
	out := m.items.Filter(func(n Notification) bool {
		return n.UserID == userID && (!unreadOnly || !n.Read)
	})
	slices.Reverse(out)
	return out
}

func (m *MemoryStore) CountUnread(userID string) int {
	return m.items.Count(func(n Notification) bool { return n.UserID == userID && !n.Read })
}

func (m *MemoryStore) MarkRead(userID, id string) (Notification, error) {
	n, err := m.items.Update(id, func(n *Notification) error {
		if n.UserID != userID {
			return ErrNotFound
		}
		n.Read = true
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return Notification{}, ErrNotFound
	}
	return n, err
}
