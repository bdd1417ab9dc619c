// Package config defines service configuration and its layered loading.
package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory batch item queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of batch workers.
	WorkerCount int `koanf:"worker_count"`

	// IdempotencyCacheSize bounds the remembered Idempotency-Key headers.
	IdempotencyCacheSize int `koanf:"idempotency_cache_size"`

	// MaxBatchItems caps the items of one batch submission.
	MaxBatchItems int `koanf:"max_batch_items"`

	// MaxStoredBatches bounds the job store; the oldest finished batch is
	// dropped first.
	MaxStoredBatches int `koanf:"max_stored_batches"`

	// EmissionFactors overrides factors per facet: facet -> mode -> kg CO2e
	// per unit. Air bands use "air.short", "air.medium" and "air.long".
	EmissionFactors map[string]map[string]float64 `koanf:"emission_factors"`

	// Routes maps "origin|destination" to a distance in km.
	Routes map[string]float64 `koanf:"routes"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		QueueSize:            10_000,
		WorkerCount:          runtime.NumCPU() * 2,
		IdempotencyCacheSize: 50_000,
		MaxBatchItems:        500,
		MaxStoredBatches:     10_000,
		EmissionFactors:      map[string]map[string]float64{},
		Routes:               map[string]float64{},
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxBatchItems <= 0:
		return fmt.Errorf("%w: max_batch_items must be positive, got %d", ErrInvalidConfig, c.MaxBatchItems)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	for facet, modes := range c.EmissionFactors {
		for mode, v := range modes {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: emission_factors.%s.%s must be a non-negative number, got %v", ErrInvalidConfig, facet, mode, v)
			}
		}
	}
	for route, km := range c.Routes {
		if km <= 0 || math.IsNaN(km) || math.IsInf(km, 0) {
			return fmt.Errorf("%w: routes %q must be a positive distance, got %v", ErrInvalidConfig, route, km)
		}
	}
	return nil
}
