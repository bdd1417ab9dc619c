package service

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"
	"time"

	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

const urbanCore = `{"venueLocationType":"urban-core","transitAccessibility":"excellent","expectedAttendance":1000}`

func TestMain(m *testing.M) {
	if err := logger.Init(logger.WithOutput(io.Discard)); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func startService(opts ...Option) *Service {
	s := New(append([]Option{WithWorkerCount(2), WithRoutes(map[string]float64{"Hackney|Camden": 20})}, opts...)...)
	So(s.Start(context.Background()), ShouldBeNil)
	return s
}

func waitCompleted(s *Service, id string) *model.Batch {
	deadline := time.Now().Add(5 * time.Second)
	for {
		b, err := s.GetBatch(context.Background(), id)
		So(err, ShouldBeNil)
		if b.Status == model.StatusCompleted || time.Now().After(deadline) {
			return b
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		s := New()

		Convey("Then operations report ErrNotStarted", func() {
			_, err := s.Estimate(context.Background(), EstimateRequest{Facet: "food"})
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
			_, err = s.SubmitBatch(context.Background(), []model.Item{{Facet: "food"}}, "")
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
			_, err = s.Facets()
			So(errors.Is(err, ErrNotStarted), ShouldBeTrue)
			So(s.GetStats()["started"], ShouldEqual, false)
		})

		Convey("Then Stop is a no-op", func() {
			So(func() { s.Stop() }, ShouldNotPanic)
		})
	})

	Convey("Given overrides for an unknown facet", t, func() {
		s := New(WithFactorOverrides(facet.Overrides{"fireworks": {"rocket": 1}}))

		Convey("Then Start fails", func() {
			err := s.Start(context.Background())
			So(errors.Is(err, facet.ErrUnknownFacet), ShouldBeTrue)
			So(s.IsStarted(), ShouldBeFalse)
		})
	})

	Convey("Given a started service", t, func() {
		s := startService()
		defer s.Stop()

		Convey("Then it lists the facets and reports stats", func() {
			cats, err := s.Facets()
			So(err, ShouldBeNil)
			So(len(cats), ShouldEqual, 5)

			stats := s.GetStats()
			So(stats["started"], ShouldEqual, true)
			So(stats["workerCount"], ShouldEqual, 2)
			So(stats["batchesStored"], ShouldEqual, 0)
		})

		Convey("Then starting twice is harmless", func() {
			So(s.Start(context.Background()), ShouldBeNil)
			So(s.IsStarted(), ShouldBeTrue)
		})
	})
}

func TestServiceEstimate(t *testing.T) {
	Convey("Given a started service with one known route", t, func() {
		s := startService()
		defer s.Stop()
		ctx := context.Background()

		Convey("When audience travel names the route", func() {
			est, err := s.Estimate(ctx, EstimateRequest{
				Facet:       "audience",
				Label:       "main stage",
				Decode:      facet.JSON([]byte(urbanCore)),
				Origin:      "camden",
				Destination: "HACKNEY",
				Explain:     true,
			})

			Convey("Then the route distance drives the estimate", func() {
				So(err, ShouldBeNil)
				So(est.ID, ShouldNotBeEmpty)
				So(est.Label, ShouldEqual, "main stage")
				So(est.Result.EstimatedMassKg, ShouldEqual, 1013)
				So(est.Route, ShouldNotBeNil)
				So(est.Route.DistanceKm, ShouldEqual, 20)
				So(est.Trace, ShouldNotBeEmpty)
				So(est.Equivalency.InputKg, ShouldEqual, 1013)
				So(s.GetStats()["estimatesServed"], ShouldEqual, int64(1))
			})
		})

		Convey("When the route is unknown", func() {
			est, err := s.Estimate(ctx, EstimateRequest{
				Facet:       "audience",
				Decode:      facet.JSON([]byte(urbanCore)),
				Origin:      "Leeds",
				Destination: "York",
			})

			Convey("Then the facet default applies and no route is reported", func() {
				So(err, ShouldBeNil)
				So(est.Route, ShouldBeNil)
				So(est.Trace, ShouldBeNil)
			})
		})

		Convey("When a route is sent to a facet that does not travel", func() {
			est, err := s.Estimate(ctx, EstimateRequest{
				Facet:       "food",
				Decode:      facet.JSON([]byte(`{"menuType":"mixed","mealsServed":1000}`)),
				Origin:      "Hackney",
				Destination: "Camden",
			})

			Convey("Then the route is ignored", func() {
				So(err, ShouldBeNil)
				So(est.Result.EstimatedMassKg, ShouldEqual, 1945)
				So(est.Route, ShouldBeNil)
			})
		})

		Convey("Then an unknown facet is ErrUnknownFacet", func() {
			_, err := s.Estimate(ctx, EstimateRequest{Facet: "fireworks"})
			So(errors.Is(err, facet.ErrUnknownFacet), ShouldBeTrue)
		})

		Convey("Then malformed input is ErrDecodeInput", func() {
			_, err := s.Estimate(ctx, EstimateRequest{Facet: "food", Decode: facet.JSON([]byte(`[`))})
			So(errors.Is(err, facet.ErrDecodeInput), ShouldBeTrue)
		})
	})

	Convey("Given factor overrides", t, func() {
		s := startService(WithFactorOverrides(facet.Overrides{"food": {"red_meat": 0}}))
		defer s.Stop()

		Convey("Then estimates use them", func() {
			est, err := s.EstimateItem(context.Background(), model.Item{
				Facet: "food",
				Input: []byte(`{"menuType":"mixed","mealsServed":1000}`),
			})
			So(err, ShouldBeNil)
			So(est.Result.EstimatedMassKg, ShouldEqual, 845)
		})
	})
}
