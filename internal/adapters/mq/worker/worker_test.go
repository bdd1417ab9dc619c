package worker_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okian/footprint/internal/adapters/mq/worker"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/model"
	logging "github.com/okian/footprint/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

type mockQueue struct {
	jobs chan model.Job
	once sync.Once
}

func newMockQueue() *mockQueue {
	return &mockQueue{jobs: make(chan model.Job, 10)}
}

func (q *mockQueue) Dequeue(context.Context) <-chan model.Job { return q.jobs }

func (q *mockQueue) Close() error {
	q.once.Do(func() { close(q.jobs) })
	return nil
}

type mockEstimator struct{}

func (mockEstimator) EstimateItem(_ context.Context, item model.Item) (*model.Estimate, error) {
	if item.Facet == "broken" {
		return nil, errors.New("unknown facet")
	}
	return &model.Estimate{Facet: item.Facet, Result: impact.Result{EstimatedMassKg: 10}}, nil
}

type outcome struct {
	est     *model.Estimate
	failure error
}

type mockRecorder struct {
	mu       sync.Mutex
	outcomes map[int]outcome
	err      error
}

func newMockRecorder() *mockRecorder {
	return &mockRecorder{outcomes: map[int]outcome{}}
}

func (r *mockRecorder) RecordOutcome(_ context.Context, _ string, index int, est *model.Estimate, failure error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.outcomes[index] = outcome{est: est, failure: failure}
	return nil
}

func (r *mockRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.outcomes)
}

func (r *mockRecorder) get(index int) (outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.outcomes[index]
	return o, ok
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return false
}

func TestInMemoryWorker(t *testing.T) {
	convey.Convey("Given a running worker", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		rec := newMockRecorder()
		w := worker.NewInMemoryWorker(q, mockEstimator{}, rec, worker.WithName("test-worker"))
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Run(ctx)

		convey.Convey("When a valid item arrives", func() {
			q.jobs <- model.Job{BatchID: "b", Index: 0, Item: model.Item{Facet: "food"}}

			convey.Convey("Then its estimate is recorded", func() {
				convey.So(waitFor(func() bool { return rec.count() == 1 }), convey.ShouldBeTrue)
				o, _ := rec.get(0)
				convey.So(o.failure, convey.ShouldBeNil)
				convey.So(o.est.Result.EstimatedMassKg, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When an item cannot be estimated", func() {
			q.jobs <- model.Job{BatchID: "b", Index: 3, Item: model.Item{Facet: "broken"}}

			convey.Convey("Then the failure is recorded on the item", func() {
				convey.So(waitFor(func() bool { return rec.count() == 1 }), convey.ShouldBeTrue)
				o, _ := rec.get(3)
				convey.So(o.est, convey.ShouldBeNil)
				convey.So(o.failure, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When shutting down", func() {
			sctx, scancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
			defer scancel()

			convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
			convey.Convey("Then a second shutdown is harmless", func() {
				convey.So(w.Shutdown(sctx), convey.ShouldBeNil)
			})
		})
	})
}

func TestWorkerPool(t *testing.T) {
	convey.Convey("Given a pool of three workers", t, func() {
		_ = logging.Init()

		q := newMockQueue()
		rec := newMockRecorder()
		pool := worker.NewPool(3, q, mockEstimator{}, rec)
		convey.So(pool.Size(), convey.ShouldEqual, 3)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		pool.Start(ctx)

		convey.Convey("When several items are queued and the pool shuts down", func() {
			for i := 0; i < 5; i++ {
				q.jobs <- model.Job{BatchID: "b", Index: i, Item: model.Item{Facet: "power"}}
			}
			err := pool.Shutdown(context.Background())

			convey.Convey("Then every item is drained before the workers stop", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(rec.count(), convey.ShouldEqual, 5)
			})
		})
	})

	convey.Convey("A non-positive worker count picks a default", t, func() {
		_ = logging.Init()
		pool := worker.NewPool(0, newMockQueue(), mockEstimator{}, newMockRecorder())
		convey.So(pool.Size(), convey.ShouldBeGreaterThan, 0)
	})
}
