package crew_test

import (
	"strings"
	"testing"

	"github.com/okian/footprint/internal/domain/crew"
	. "github.com/smartystreets/goconvey/convey"
)

func hasLine(lines []string, fragment string) bool {
	for _, l := range lines {
		if strings.Contains(l, fragment) {
			return true
		}
	}
	return false
}

func TestCrewEstimate(t *testing.T) {
	est := crew.New()

	Convey("Given a full-touring crew living on a tour bus", t, func() {
		res := est.Estimate(crew.Input{
			StaffingModel:         crew.FullTouring,
			AccommodationStrategy: crew.TourBus,
			TotalCrewSize:         50,
			BuildDays:             3,
			StrikeDays:            1,
		})

		Convey("Then travel plus accommodation equals the total exactly", func() {
			So(res.Components[crew.ComponentTravel]+res.Components[crew.ComponentAccommodation], ShouldEqual, res.EstimatedMassKg)
		})

		Convey("And the per-person figure is the total over 50", func() {
			So(res.PerUnitMassKg, ShouldEqual, res.EstimatedMassKg/50)
		})

		Convey("And accommodation counts build, one show day and strike", func() {
			So(crew.Nights(crew.Input{BuildDays: 3, StrikeDays: 1}), ShouldEqual, 5)
			// 50 people x 5 nights x 6 kg x resident share 1.0
			So(res.Components[crew.ComponentAccommodation], ShouldEqual, 1500)
		})

		Convey("And the tour bus replaces the coach share before normalizing", func() {
			// coach 60 of an 84 total
			So(res.Distribution.Share(crew.Coach), ShouldAlmostEqual, 60.0/84*100, 1e-9)
			So(res.Components[crew.ComponentTravel], ShouldEqual, 2259)
			So(res.EstimatedMassKg, ShouldEqual, 3759)
		})

		Convey("And the scores follow the inputs", func() {
			So(res.DetailScore, ShouldEqual, 10)
			So(res.ConfidenceLevel, ShouldEqual, "high")
			So(res.Scores[crew.ScoreLogistics], ShouldEqual, "poor")
			So(hasLine(res.Tradeoffs, "tour bus"), ShouldBeTrue)
			So(hasLine(res.LeveragePoints, "ground-only travel policy would save"), ShouldBeTrue)
		})
	})

	Convey("Given an empty input", t, func() {
		res := est.Estimate(crew.Input{})

		Convey("Then the mass is zero and only the detail prompt appears", func() {
			So(res.EstimatedMassKg, ShouldEqual, 0)
			So(res.PerUnitMassKg, ShouldEqual, 0)
			So(res.BaselineProfile, ShouldEqual, crew.DefaultStaffing)
			So(res.ConfidenceLevel, ShouldEqual, "low")
			So(res.Len(), ShouldEqual, 1)
			So(res.LeveragePoints[0], ShouldStartWith, "Not enough detail")
		})
	})

	Convey("Given a local crew with no accommodation strategy", t, func() {
		res := est.Estimate(crew.Input{StaffingModel: "Local_Hire", TotalCrewSize: 10, ShowDays: 2})

		Convey("Then hotel is assumed for the few who stay over", func() {
			So(hasLine(res.Assumptions, "assumed hotel"), ShouldBeTrue)
			// 10 x 2 nights x 14 kg x 0.1
			So(res.Components[crew.ComponentAccommodation], ShouldEqual, 28)
			// 10 x 30 km x (0.7x0.17 + 0.2x0.1 + 0.1x0.035)
			So(res.Components[crew.ComponentTravel], ShouldEqual, 43)
			So(hasLine(res.Tradeoffs, "Local hiring"), ShouldBeTrue)
		})
	})

	Convey("Given a ground-only policy over a long distance", t, func() {
		in := crew.Input{StaffingModel: crew.Hybrid, TravelPolicy: "ground-only", TotalCrewSize: 20, AverageTravelDistanceKm: 1200}
		res := est.Estimate(in)

		Convey("Then flights shrink and the displaced share goes to rail and coach", func() {
			So(res.Distribution.Share(crew.Air), ShouldAlmostEqual, 2, 1e-9)
			So(res.Distribution.Share(crew.Rail), ShouldAlmostEqual, 20.8, 1e-9)
			So(res.Distribution.Share(crew.Coach), ShouldAlmostEqual, 17.2, 1e-9)
			So(hasLine(res.Tradeoffs, "1200 km"), ShouldBeTrue)
		})

		Convey("And it emits less than an unrestricted policy", func() {
			open := in
			open.TravelPolicy = "unrestricted"
			So(res.Components[crew.ComponentTravel], ShouldBeLessThan, est.Estimate(open).Components[crew.ComponentTravel])
		})
	})

	Convey("Explain and Describe expose the pipeline", t, func() {
		So(len(est.Explain(crew.Input{})), ShouldEqual, 4)
		cat := est.Describe()
		So(cat.Facet, ShouldEqual, crew.Facet)
		So(cat.Steps, ShouldResemble, []string{crew.StepAccommodation, crew.StepPolicy})
		So(cat.Fields[1].Values, ShouldResemble, []string{crew.LocalCommute, crew.SharedHousing, crew.Hotel, crew.TourBus})
	})
}

func TestUnrecognisedValues(t *testing.T) {
	est := crew.New()

	Convey("Given only unrecognised enum values", t, func() {
		garbage := crew.Input{StaffingModel: "clones", AccommodationStrategy: "castle", TravelPolicy: "teleport"}
		res := est.Estimate(garbage)
		empty := est.Estimate(crew.Input{})

		Convey("Then the result reads exactly like an empty input", func() {
			So(crew.DetailScore(garbage), ShouldEqual, 0)
			So(res.DetailScore, ShouldEqual, empty.DetailScore)
			So(res.ConfidenceLevel, ShouldEqual, "low")
			So(res.Scores, ShouldResemble, empty.Scores)
			So(res.Insights, ShouldResemble, empty.Insights)
			So(res.LeveragePoints[0], ShouldStartWith, "Not enough detail")
		})

		Convey("And alongside real figures they add nothing", func() {
			known := crew.Input{TotalCrewSize: 10, ShowDays: 2}
			mixed := garbage
			mixed.TotalCrewSize = known.TotalCrewSize
			mixed.ShowDays = known.ShowDays
			a, b := est.Estimate(mixed), est.Estimate(known)
			So(a.DetailScore, ShouldEqual, b.DetailScore)
			So(a.ConfidenceLevel, ShouldEqual, b.ConfidenceLevel)
			So(a.EstimatedMassKg, ShouldEqual, b.EstimatedMassKg)
			So(a.Insights, ShouldResemble, b.Insights)
		})
	})
}

func TestNights(t *testing.T) {
	Convey("Show days default to one only alongside other day counts", t, func() {
		So(crew.Nights(crew.Input{}), ShouldEqual, 0)
		So(crew.Nights(crew.Input{BuildDays: 2}), ShouldEqual, 3)
		So(crew.Nights(crew.Input{StrikeDays: 1}), ShouldEqual, 2)
		So(crew.Nights(crew.Input{ShowDays: 4}), ShouldEqual, 4)
	})

	Convey("Given a crew with no day counts", t, func() {
		res := crew.New().Estimate(crew.Input{TotalCrewSize: 10, StaffingModel: crew.FullTouring})

		Convey("Then no accommodation is charged and travel is the whole total", func() {
			So(res.Components[crew.ComponentAccommodation], ShouldEqual, 0)
			So(res.Components[crew.ComponentTravel], ShouldEqual, res.EstimatedMassKg)
			So(res.EstimatedMassKg, ShouldBeGreaterThan, 0)
			So(hasLine(res.Assumptions, "no day counts given"), ShouldBeTrue)
			So(hasLine(res.WhatYouControl, "nights"), ShouldBeFalse)
		})
	})
}
