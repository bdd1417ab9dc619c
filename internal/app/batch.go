package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/footprint/internal/adapters/mq/queue"
	"github.com/okian/footprint/internal/adapters/repository"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/pkg/logger"
	"github.com/okian/footprint/pkg/metrics"
)

// BatchReceipt acknowledges a submitted batch.
type BatchReceipt struct {
	ID     string       `json:"batchId"`
	Status model.Status `json:"status"`
	// Duplicate is set when the idempotency key was already used; ID then
	// names the original batch.
	Duplicate bool `json:"duplicate,omitempty"`
}

// SubmitBatch stores a batch and queues one job per item. A repeated
// idempotencyKey returns the original batch instead of a new one.
func (s *Service) SubmitBatch(ctx context.Context, items []model.Item, idempotencyKey string) (BatchReceipt, error) {
	if _, err := s.components(); err != nil {
		return BatchReceipt{}, err
	}
	switch {
	case len(items) == 0:
		return BatchReceipt{}, ErrEmptyBatch
	case len(items) > s.maxBatchItems:
		return BatchReceipt{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, len(items), s.maxBatchItems)
	}

	id := uuid.NewString()
	if idempotencyKey != "" {
		if existing, seen := s.deduper.Claim(ctx, idempotencyKey, id); seen {
			metrics.RecordBatchDuplicate()
			receipt := BatchReceipt{ID: existing, Status: model.StatusQueued, Duplicate: true}
			if b, err := s.store.Get(ctx, existing); err == nil {
				receipt.Status = b.Status
			}
			return receipt, nil
		}
	}
	release := func() {
		if idempotencyKey != "" {
			s.deduper.Release(ctx, idempotencyKey)
		}
	}

	if free := s.queue.Free(ctx); free < len(items) {
		release()
		metrics.RecordQueueRejected("batch_capacity")
		return BatchReceipt{}, fmt.Errorf("%w: %d items, %d queue slots free", ErrBackpressure, len(items), free)
	}

	if err := s.store.Put(ctx, model.NewBatch(id, items, time.Now().UTC())); err != nil {
		release()
		if errors.Is(err, repository.ErrFull) {
			return BatchReceipt{}, fmt.Errorf("%w: %w", ErrBackpressure, err)
		}
		return BatchReceipt{}, err
	}

	for i, item := range items {
		if err := s.queue.Enqueue(ctx, queue.Job{BatchID: id, Index: i, Item: item}); err != nil {
			// The item can never be processed; close it out so the batch completes.
			_ = s.RecordOutcome(ctx, id, i, nil, fmt.Errorf("not queued: %w", err))
		}
	}

	s.batches.Add(1)
	metrics.RecordBatchSubmitted()
	s.logger.Info(ctx, "batch submitted",
		logger.String("batchId", id),
		logger.Int("items", len(items)),
		logger.Bool("idempotent", idempotencyKey != ""),
	)
	return BatchReceipt{ID: id, Status: model.StatusQueued}, nil
}

// RecordOutcome stores the outcome of one batch item. It implements
// worker.Recorder.
func (s *Service) RecordOutcome(ctx context.Context, batchID string, index int, est *model.Estimate, failure error) error {
	var errMsg string
	if failure != nil {
		errMsg = failure.Error()
	}
	var (
		completed bool
		snapshot  model.Batch
	)
	err := s.store.Update(ctx, batchID, func(b *model.Batch) {
		if b.Record(index, est, errMsg, time.Now().UTC()) && b.Status == model.StatusCompleted {
			completed = true
			snapshot = *b
		}
	})
	if err != nil {
		return fmt.Errorf("record outcome %s[%d]: %w", batchID, index, err)
	}
	if completed {
		metrics.RecordBatchCompleted()
		s.logger.Info(ctx, "batch completed",
			logger.String("batchId", batchID),
			logger.Int("items", snapshot.Total),
			logger.Int("failed", snapshot.Failed),
			logger.Float64("totalMassKg", snapshot.TotalMassKg),
		)
	}
	return nil
}

// GetBatch returns a snapshot of a batch.
func (s *Service) GetBatch(ctx context.Context, id string) (*model.Batch, error) {
	if _, err := s.components(); err != nil {
		return nil, err
	}
	b, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, id)
		}
		return nil, err
	}
	return b, nil
}
