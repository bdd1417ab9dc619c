// Package service computes facet estimates on request and runs batches of
// them in the background. It implements the dependencies of the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/footprint/internal/adapters/mq/queue"
	"github.com/okian/footprint/internal/adapters/mq/worker"
	"github.com/okian/footprint/internal/adapters/repository"
	"github.com/okian/footprint/internal/domain/dedupe"
	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/routing"
	"github.com/okian/footprint/pkg/logger"
)

const stopTimeout = 10 * time.Second

// Service implements estimation and batch processing.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry *facet.Registry
	resolver routing.Resolver
	store    repository.Store
	deduper  dedupe.Deduper
	queue    queue.Queue
	pool     *worker.Pool

	// Configuration
	workerCount      int
	queueSize        int
	idempotencySize  int
	maxBatchItems    int
	maxStoredBatches int
	overrides        facet.Overrides
	routes           map[string]float64

	// State
	started   bool
	estimates atomic.Int64
	batches   atomic.Int64

	logger logger.Logger
}

// New constructs a Service. Call Start before use.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU() * 2,
		queueSize:        10_000,
		idempotencySize:  50_000,
		maxBatchItems:    500,
		maxStoredBatches: 10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the facet registry and starts the batch workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	registry, err := facet.Default(s.overrides)
	if err != nil {
		return fmt.Errorf("build facet registry: %w", err)
	}
	if s.resolver == nil {
		table, err := routing.NewTableResolver(s.routes)
		if err != nil {
			return fmt.Errorf("build route table: %w", err)
		}
		s.resolver = table
	}

	s.registry = registry
	s.store = repository.NewMemoryStore(repository.WithMaxBatches(s.maxStoredBatches))
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.idempotencySize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = worker.NewPool(s.workerCount, s.queue, s, s)
	// Workers outlive ctx so Stop can drain queued items.
	s.pool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.logger.Info(ctx, "footprint service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("maxBatchItems", s.maxBatchItems),
		logger.Any("facets", registry.Names()),
		logger.Int("overriddenFacets", len(s.overrides)),
	)
	return nil
}

// Stop drains queued batch items and stops the workers. Estimates keep
// working while the queue drains.
func (s *Service) Stop() {
	s.mu.RLock()
	started, pool := s.started, s.pool
	s.mu.RUnlock()
	if !started {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not stop cleanly", logger.Error(err))
	}

	s.mu.Lock()
	s.started = false
	s.mu.Unlock()
	s.logger.Info(ctx, "footprint service stopped")
}

// IsStarted reports whether Start has completed.
func (s *Service) IsStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}

func (s *Service) components() (*facet.Registry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.registry, nil
}

// Facets describes every registered facet.
func (s *Service) Facets() ([]impact.Catalogue, error) {
	reg, err := s.components()
	if err != nil {
		return nil, err
	}
	return reg.Catalogue(), nil
}

// GetStats returns service counters.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"estimatesServed":  s.estimates.Load(),
		"batchesSubmitted": s.batches.Load(),
		"maxBatchItems":    s.maxBatchItems,
	}
	if !s.started {
		return stats
	}
	ctx := context.Background()
	stats["facets"] = s.registry.Names()
	stats["workerCount"] = s.pool.Size()
	stats["queueLength"] = s.queue.Len(ctx)
	stats["queueFree"] = s.queue.Free(ctx)
	stats["batchesStored"] = s.store.Count(ctx)
	stats["idempotencyKeys"] = s.deduper.Size()
	return stats
}
