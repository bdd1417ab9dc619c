// Package model contains the estimate and batch shapes passed between layers.
package model

import (
	"encoding/json"
	"slices"
	"time"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/routing"
)

// Status is the lifecycle state of a batch.
type Status string

// Batch states.
const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
)

// Estimate is one computed facet estimate with its presentation extras.
type Estimate struct {
	ID          string              `json:"id"`
	Facet       string              `json:"facet"`
	Label       string              `json:"label,omitempty"`
	Result      impact.Result       `json:"result"`
	Equivalency equivalency.Output  `json:"equivalency"`
	Route       *routing.Route      `json:"route,omitempty"`
	Trace       []impact.TraceEntry `json:"trace,omitempty"`
}

// Item is one scenario of a batch.
type Item struct {
	Facet       string          `json:"facet" yaml:"facet"`
	Label       string          `json:"label,omitempty" yaml:"label,omitempty"`
	Input       json.RawMessage `json:"input,omitempty" yaml:"-"`
	Origin      string          `json:"origin,omitempty" yaml:"origin,omitempty"`
	Destination string          `json:"destination,omitempty" yaml:"destination,omitempty"`
	TravelMode  string          `json:"travelMode,omitempty" yaml:"travelMode,omitempty"`
}

// Outcome is the processed form of one Item. Exactly one of Estimate and
// Error is set once the item is done.
type Outcome struct {
	Index    int       `json:"index"`
	Done     bool      `json:"done"`
	Estimate *Estimate `json:"estimate,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Batch is an asynchronous group of estimates.
type Batch struct {
	ID          string     `json:"batchId"`
	Status      Status     `json:"status"`
	SubmittedAt time.Time  `json:"submittedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	Failed      int        `json:"failed"`
	TotalMassKg float64    `json:"totalMassKg"`
	Outcomes    []Outcome  `json:"results"`
	Items       []Item     `json:"-"`
}

// NewBatch creates a queued batch with one pending outcome per item.
func NewBatch(id string, items []Item, now time.Time) *Batch {
	b := &Batch{
		ID:          id,
		Status:      StatusQueued,
		SubmittedAt: now,
		Total:       len(items),
		Items:       slices.Clone(items),
		Outcomes:    make([]Outcome, len(items)),
	}
	for i := range b.Outcomes {
		b.Outcomes[i].Index = i
	}
	return b
}

// Record stores the outcome of item index and advances the status. Recording
// an index twice, or one out of range, is ignored and reports false.
func (b *Batch) Record(index int, est *Estimate, errMsg string, now time.Time) bool {
	if index < 0 || index >= len(b.Outcomes) || b.Outcomes[index].Done {
		return false
	}
	o := &b.Outcomes[index]
	o.Done = true
	if est != nil && errMsg == "" {
		o.Estimate = est
		b.TotalMassKg += est.Result.EstimatedMassKg
	} else {
		o.Error = errMsg
		b.Failed++
	}
	b.Processed++
	b.Status = StatusRunning
	if b.Processed == b.Total {
		b.Status = StatusCompleted
		b.CompletedAt = &now
	}
	return true
}

// Clone returns a copy that shares no mutable state with b.
func (b *Batch) Clone() *Batch {
	c := *b
	c.Outcomes = slices.Clone(b.Outcomes)
	c.Items = slices.Clone(b.Items)
	if b.CompletedAt != nil {
		t := *b.CompletedAt
		c.CompletedAt = &t
	}
	return &c
}

// Job is the queued unit of work: one item of one batch.
type Job struct {
	BatchID string
	Index   int
	Item    Item
}
