package model_test

import (
	"testing"
	"time"

	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestBatch(t *testing.T) {
	convey.Convey("Given a batch of two items", t, func() {
		now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
		b := model.NewBatch("b-1", []model.Item{{Facet: "food"}, {Facet: "power"}}, now)

		convey.So(b.Status, convey.ShouldEqual, model.StatusQueued)
		convey.So(b.Total, convey.ShouldEqual, 2)
		convey.So(b.Outcomes[1].Index, convey.ShouldEqual, 1)

		convey.Convey("When the first item succeeds", func() {
			est := &model.Estimate{Facet: "food", Result: impact.Result{EstimatedMassKg: 1945}}
			convey.So(b.Record(0, est, "", now), convey.ShouldBeTrue)

			convey.Convey("Then the batch is running", func() {
				convey.So(b.Status, convey.ShouldEqual, model.StatusRunning)
				convey.So(b.TotalMassKg, convey.ShouldEqual, 1945)
				convey.So(b.CompletedAt, convey.ShouldBeNil)
			})

			convey.Convey("And recording it again is ignored", func() {
				convey.So(b.Record(0, est, "", now), convey.ShouldBeFalse)
				convey.So(b.Processed, convey.ShouldEqual, 1)
			})

			convey.Convey("And when the second item fails the batch completes", func() {
				later := now.Add(time.Second)
				convey.So(b.Record(1, nil, "unknown facet", later), convey.ShouldBeTrue)
				convey.So(b.Status, convey.ShouldEqual, model.StatusCompleted)
				convey.So(b.Failed, convey.ShouldEqual, 1)
				convey.So(*b.CompletedAt, convey.ShouldEqual, later)
				convey.So(b.Outcomes[1].Error, convey.ShouldEqual, "unknown facet")
			})
		})

		convey.Convey("Then out of range indexes are ignored", func() {
			convey.So(b.Record(2, nil, "x", now), convey.ShouldBeFalse)
			convey.So(b.Record(-1, nil, "x", now), convey.ShouldBeFalse)
		})

		convey.Convey("Then a clone does not share outcomes", func() {
			c := b.Clone()
			c.Record(0, nil, "boom", now)
			convey.So(b.Outcomes[0].Done, convey.ShouldBeFalse)
			convey.So(b.Processed, convey.ShouldEqual, 0)
		})
	})
}
