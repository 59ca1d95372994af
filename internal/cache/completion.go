package cache

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// CompletionCache is one local tier of the completion store. A tier answers
// Get with ok=false when it has never seen the stage, which is distinct from
// holding an empty set (a stage whose last completed card was un-toggled).
//
// Alongside the completion set every tier also keeps the raw per-card toggle
// blob (map of card id to bool) for clients still reading the legacy shape.
type CompletionCache interface {
	Get(ctx context.Context, stageID uuid.UUID) ([]int, bool, error)
	Put(ctx context.Context, stageID uuid.UUID, cardIDs []int) error
	PutToggleState(ctx context.Context, stageID uuid.UUID, state map[string]bool) error
}

// MemoryCache is the in-process tier. It cannot fail, which is what makes the
// completion service's "local write always succeeds" contract possible.
type MemoryCache struct {
	mu      sync.RWMutex
	sets    map[uuid.UUID][]int
	toggles map[uuid.UUID]map[string]bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		sets:    map[uuid.UUID][]int{},
		toggles: map[uuid.UUID]map[string]bool{},
	}
}

func (m *MemoryCache) Get(_ context.Context, stageID uuid.UUID) ([]int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids, ok := m.sets[stageID]
	if !ok {
		return nil, false, nil
	}
	out := make([]int, len(ids))
	copy(out, ids)
	return out, true, nil
}

func (m *MemoryCache) Put(_ context.Context, stageID uuid.UUID, cardIDs []int) error {
	stored := make([]int, len(cardIDs))
	copy(stored, cardIDs)
	m.mu.Lock()
	m.sets[stageID] = stored
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) PutToggleState(_ context.Context, stageID uuid.UUID, state map[string]bool) error {
	stored := make(map[string]bool, len(state))
	for k, v := range state {
		stored[k] = v
	}
	m.mu.Lock()
	m.toggles[stageID] = stored
	m.mu.Unlock()
	return nil
}
