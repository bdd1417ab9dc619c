// Package dedupe remembers idempotency keys so a retried batch submission
// returns the batch created by the first attempt.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 50_000

// Deduper maps idempotency keys to the ID of the work they created.
type Deduper interface {
	// Claim atomically binds key to id when key is unseen and returns
	// (id, false). When key is already bound it returns the bound ID and true.
	Claim(ctx context.Context, key, id string) (string, bool)

	// Release forgets key so a failed submission can be retried with it.
	Release(ctx context.Context, key string)

	Size() int64
}

type entry struct {
	key string
	id  string
}

// inMemoryDeduper keeps keys in insertion order and evicts the oldest when
// full. maxSize <= 0 keeps every key.
type inMemoryDeduper struct {
	mu      sync.Mutex
	keys    map[string]*list.Element
	order   *list.List
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.keys = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) Claim(_ context.Context, key, id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.keys[key]; ok {
		return el.Value.(entry).id, true
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.keys[key] = d.order.PushFront(entry{key: key, id: id})
	d.size.Add(1)
	return id, false
}

func (d *inMemoryDeduper) Release(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.keys[key]; ok {
		d.order.Remove(el)
		delete(d.keys, key)
		d.size.Add(-1)
	}
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper) evictOldest() {
	el := d.order.Back()
	if el == nil {
		return
	}
	d.order.Remove(el)
	delete(d.keys, el.Value.(entry).key)
	d.size.Add(-1)
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
