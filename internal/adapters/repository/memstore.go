package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/pkg/metrics"
)

// MemoryStore is an in-memory Store. A dataset is immutable once loaded;
// Replace builds a new snapshot and swaps it under the lock.
type MemoryStore struct {
	mu         sync.RWMutex
	byID       map[int64]model.ClientRecord
	ids        []int64
	maxRecords int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		byID:       map[int64]model.ClientRecord{},
		maxRecords: 1_000_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace implements Store.
func (s *MemoryStore) Replace(ctx context.Context, records []model.ClientRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(records) > s.maxRecords {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRecords, len(records), s.maxRecords)
	}

	byID := make(map[int64]model.ClientRecord, len(records))
	ids := make([]int64, 0, len(records))
	for _, rec := range records {
		if _, dup := byID[rec.Identifier]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateID, rec.Identifier)
		}
		byID[rec.Identifier] = rec
		ids = append(ids, rec.Identifier)
	}
	slices.Sort(ids)

	s.mu.Lock()
	s.byID, s.ids = byID, ids
	s.mu.Unlock()

	metrics.UpdateClientsLoaded(len(ids))
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id int64) (model.ClientRecord, error) {
	s.mu.RLock()
	rec, ok := s.byID[id]
	s.mu.RUnlock()
	if !ok {
		return model.ClientRecord{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, nil
}

// IDs implements Store.
func (s *MemoryStore) IDs(_ context.Context) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// All implements Store.
func (s *MemoryStore) All(_ context.Context) []model.ClientRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.ClientRecord, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.byID[id])
	}
	return out
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

var _ Store = (*MemoryStore)(nil)
