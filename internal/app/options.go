package service

import (
	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/internal/routing"
	"github.com/okian/footprint/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of batch workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of queued batch items.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithIdempotencyCacheSize bounds the remembered idempotency keys.
func WithIdempotencyCacheSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.idempotencySize = size
		}
	}
}

// WithMaxBatchItems caps the items of one batch.
func WithMaxBatchItems(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBatchItems = n
		}
	}
}

// WithMaxStoredBatches bounds the batch store.
func WithMaxStoredBatches(n int) Option {
	return func(s *Service) {
		s.maxStoredBatches = n
	}
}

// WithFactorOverrides replaces selected emission factors per facet.
func WithFactorOverrides(o facet.Overrides) Option {
	return func(s *Service) {
		s.overrides = o
	}
}

// WithRoutes configures the table resolver with "origin|destination" keys.
// It is ignored when WithResolver is also given.
func WithRoutes(routes map[string]float64) Option {
	return func(s *Service) {
		s.routes = routes
	}
}

// WithResolver sets the route distance resolver.
func WithResolver(r routing.Resolver) Option {
	return func(s *Service) {
		if r != nil {
			s.resolver = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
