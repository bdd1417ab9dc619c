// Package repository stores batch jobs and their per-item outcomes.
package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/pkg/metrics"
)

// Store provides read/write access to batches.
type Store interface {
	// Put stores a new batch.
	Put(ctx context.Context, b *model.Batch) error

	// Get returns a snapshot of the batch, or ErrNotFound.
	Get(ctx context.Context, id string) (*model.Batch, error)

	// Update applies fn to the stored batch under the store lock.
	Update(ctx context.Context, id string, fn func(b *model.Batch)) error

	// Delete removes a batch. Deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Count returns the number of stored batches.
	Count(ctx context.Context) int
}

// MemoryStore is an in-memory Store. Batches live for the life of the process.
type MemoryStore struct {
	mu         sync.RWMutex
	batches    map[string]*model.Batch
	order      []string
	maxBatches int
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{batches: make(map[string]*model.Batch)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Put stores a copy of b.
func (s *MemoryStore) Put(_ context.Context, b *model.Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[b.ID]; ok {
		return fmt.Errorf("%w: %s", ErrExists, b.ID)
	}
	if s.maxBatches > 0 && len(s.batches) >= s.maxBatches && !s.evictCompleted() {
		metrics.RecordErrorByComponent("repository", "full")
		return fmt.Errorf("%w: %d batches held", ErrFull, len(s.batches))
	}
	s.batches[b.ID] = b.Clone()
	s.order = append(s.order, b.ID)
	metrics.UpdateBatchesStored(len(s.batches))
	return nil
}

// Get returns a copy of the stored batch.
func (s *MemoryStore) Get(_ context.Context, id string) (*model.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.batches[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return b.Clone(), nil
}

// Update mutates the stored batch in place.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(b *model.Batch)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.batches[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	fn(b)
	return nil
}

// Delete removes a batch.
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.batches[id]; ok {
		delete(s.batches, id)
		s.dropOrder(id)
		metrics.UpdateBatchesStored(len(s.batches))
	}
	return nil
}

// Count returns the number of stored batches.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.batches)
}

// evictCompleted drops the oldest completed batch. Must hold s.mu.
func (s *MemoryStore) evictCompleted() bool {
	for _, id := range s.order {
		if s.batches[id].Status == model.StatusCompleted {
			delete(s.batches, id)
			s.dropOrder(id)
			return true
		}
	}
	return false
}

func (s *MemoryStore) dropOrder(id string) {
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}
