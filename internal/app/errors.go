package service

import "errors"

// Sentinel kinds returned by the service.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrEmptyBatch    = errors.New("batch has no items")
	ErrBatchTooLarge = errors.New("batch too large")
	ErrBackpressure  = errors.New("backpressure")
	ErrBatchNotFound = errors.New("batch not found")
)
