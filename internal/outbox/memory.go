package outbox

import (
	"context"
	"sync"

	"chatflow/client/internal/model"
)

type memoryOutbox struct {
	mu    sync.Mutex
	saves map[string][]model.PendingSave
}

// NewMemoryOutbox returns an Outbox that lives only as long as the process.
func NewMemoryOutbox() Outbox {
	return &memoryOutbox{saves: make(map[string][]model.PendingSave)}
}

func (m *memoryOutbox) Add(ctx context.Context, save *model.PendingSave) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves[save.UserID] = append(m.saves[save.UserID], *save)
	return nil
}

func (m *memoryOutbox) List(ctx context.Context, userID string) ([]model.PendingSave, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.PendingSave, len(m.saves[userID]))
	copy(out, m.saves[userID])
	return out, nil
}

func (m *memoryOutbox) Remove(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	list := m.saves[userID]
	kept := list[:0:0]
	for _, s := range list {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	m.saves[userID] = kept
	return nil
}
