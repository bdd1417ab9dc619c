package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/footprint/internal/adapters/repository"
	"github.com/okian/footprint/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func batch(id string, items int) *model.Batch {
	return model.NewBatch(id, make([]model.Item, items), time.Now())
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	Convey("Given an empty store", t, func() {
		s := repository.NewMemoryStore()

		Convey("Then unknown batches are ErrNotFound", func() {
			_, err := s.Get(ctx, "missing")
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
			So(errors.Is(s.Update(ctx, "missing", func(*model.Batch) {}), repository.ErrNotFound), ShouldBeTrue)
		})

		Convey("When a batch is stored", func() {
			So(s.Put(ctx, batch("b-1", 2)), ShouldBeNil)
			So(s.Count(ctx), ShouldEqual, 1)

			Convey("Then storing it again is ErrExists", func() {
				So(errors.Is(s.Put(ctx, batch("b-1", 1)), repository.ErrExists), ShouldBeTrue)
			})

			Convey("Then updates are visible to later reads", func() {
				So(s.Update(ctx, "b-1", func(b *model.Batch) { b.Record(0, nil, "bad input", time.Now()) }), ShouldBeNil)
				got, err := s.Get(ctx, "b-1")
				So(err, ShouldBeNil)
				So(got.Processed, ShouldEqual, 1)
				So(got.Status, ShouldEqual, model.StatusRunning)
			})

			Convey("Then a returned snapshot cannot change the store", func() {
				got, _ := s.Get(ctx, "b-1")
				got.Record(1, nil, "x", time.Now())
				again, _ := s.Get(ctx, "b-1")
				So(again.Processed, ShouldEqual, 0)
			})

			Convey("Then delete removes it", func() {
				So(s.Delete(ctx, "b-1"), ShouldBeNil)
				So(s.Delete(ctx, "b-1"), ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 0)
			})
		})
	})

	Convey("Given a store bounded to two batches", t, func() {
		s := repository.NewMemoryStore(repository.WithMaxBatches(2))
		So(s.Put(ctx, batch("b-1", 1)), ShouldBeNil)
		So(s.Put(ctx, batch("b-2", 1)), ShouldBeNil)

		Convey("When nothing has completed", func() {
			err := s.Put(ctx, batch("b-3", 1))

			Convey("Then the store is full", func() {
				So(errors.Is(err, repository.ErrFull), ShouldBeTrue)
			})
		})

		Convey("When the newer batch completes", func() {
			_ = s.Update(ctx, "b-2", func(b *model.Batch) { b.Record(0, nil, "x", time.Now()) })
			So(s.Put(ctx, batch("b-3", 1)), ShouldBeNil)

			Convey("Then it is the one evicted", func() {
				_, err := s.Get(ctx, "b-2")
				So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
				_, err = s.Get(ctx, "b-1")
				So(err, ShouldBeNil)
				So(s.Count(ctx), ShouldEqual, 2)
			})
		})
	})
}
