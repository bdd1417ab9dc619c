package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxBatches bounds the stored batches. When full, the oldest completed
// batch is dropped to make room; if none is completed the Put fails.
// max <= 0 keeps every batch.
func WithMaxBatches(maxBatches int) Option {
	return func(s *MemoryStore) {
		s.maxBatches = maxBatches
	}
}
