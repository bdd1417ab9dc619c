package production_test

import (
	"strings"
	"testing"

	"github.com/okian/footprint/internal/domain/production"
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

func TestProductionEstimate(t *testing.T) {
	est := production.New()

	Convey("Given a hybrid build with a reuse plan, freight and standard print", t, func() {
		res := est.Estimate(production.Input{
			SetDesignApproach: production.Hybrid,
			EndOfLifePlan:     "reuse",
			PrintedMaterials:  "standard",
			StageAreaSqm:      100,
			FreightDistanceKm: 500,
			FreightTonnes:     4,
		})

		Convey("Then every component follows its formula", func() {
			// 29.55 kg/sqm x 100 sqm x 0.6
			So(res.Components[production.ComponentMaterials], ShouldEqual, 1773)
			So(res.Components[production.ComponentFreight], ShouldEqual, 210)
			So(res.Components[production.ComponentPrint], ShouldEqual, 80)
			So(res.EstimatedMassKg, ShouldEqual, 2063)
			So(res.PerUnitMassKg, ShouldEqual, 2063.0/100)
		})

		Convey("And the scores reflect the detail and circularity", func() {
			So(res.DetailScore, ShouldEqual, 11)
			So(res.ConfidenceLevel, ShouldEqual, "high")
			So(res.Scores[production.ScoreCircularity], ShouldEqual, "good")
			So(hasLine(res.WhatYouControl, "Printed collateral adds 80 kg"), ShouldBeTrue)
		})
	})

	Convey("Given aluminium as the primary material", t, func() {
		res := est.Estimate(production.Input{PrimaryMaterial: "Aluminium", StageAreaSqm: 100})

		Convey("Then its share doubles at the expense of the other new materials", func() {
			So(res.Distribution.Share(production.Aluminium), ShouldAlmostEqual, 20, 1e-9)
			So(res.Distribution.Share(production.Timber), ShouldAlmostEqual, 25-10.0/3, 1e-9)
			So(res.Distribution.Share(production.Reused), ShouldAlmostEqual, 40, 1e-9)
			So(res.Components[production.ComponentMaterials], ShouldEqual, 3422)
			So(hasLine(res.LeveragePoints, "aluminium carries"), ShouldBeTrue)
		})
	})

	Convey("Given an unrecognised primary material", t, func() {
		a := est.Estimate(production.Input{PrimaryMaterial: "unobtainium", StageAreaSqm: 100})
		b := est.Estimate(production.Input{StageAreaSqm: 100})

		Convey("Then it is ignored", func() {
			So(a.EstimatedMassKg, ShouldEqual, b.EstimatedMassKg)
			So(b.EstimatedMassKg, ShouldEqual, 2955)
		})
	})

	Convey("Given a custom build", t, func() {
		res := est.Estimate(production.Input{SetDesignApproach: production.CustomBuild, StageAreaSqm: 100})

		Convey("Then the rental-first saving is quantified", func() {
			So(res.Components[production.ComponentMaterials], ShouldEqual, 4420)
			So(hasLine(res.LeveragePoints, "save about 3,350 kg"), ShouldBeTrue)
			So(hasLine(res.Tradeoffs, "custom build"), ShouldBeTrue)
			So(res.Scores[production.ScoreCircularity], ShouldEqual, "poor")
		})
	})

	Convey("Given an empty input", t, func() {
		res := est.Estimate(production.Input{})

		So(res.EstimatedMassKg, ShouldEqual, 0)
		So(res.BaselineProfile, ShouldEqual, production.DefaultApproach)
		So(res.Len(), ShouldEqual, 1)
		So(res.LeveragePoints[0], ShouldStartWith, "Not enough detail")
	})

	Convey("Freight needs both distance and tonnage", t, func() {
		So(production.FreightKg(production.Input{FreightDistanceKm: 100}), ShouldEqual, 0)
		So(production.FreightKg(production.Input{FreightDistanceKm: 100, FreightTonnes: 2}), ShouldAlmostEqual, 21)
	})
}

func TestUnrecognisedValues(t *testing.T) {
	est := production.New()

	Convey("Given only unrecognised enum values", t, func() {
		garbage := production.Input{SetDesignApproach: "origami", PrimaryMaterial: "marble", EndOfLifePlan: "launch", PrintedMaterials: "scrolls"}
		res := est.Estimate(garbage)
		empty := est.Estimate(production.Input{})

		Convey("Then the result reads exactly like an empty input", func() {
			So(production.DetailScore(garbage), ShouldEqual, 0)
			So(res.DetailScore, ShouldEqual, empty.DetailScore)
			So(res.ConfidenceLevel, ShouldEqual, "low")
			So(res.Scores, ShouldResemble, empty.Scores)
			So(res.Insights, ShouldResemble, empty.Insights)
			So(res.LeveragePoints[0], ShouldStartWith, "Not enough detail")
		})

		Convey("And alongside real figures they add nothing", func() {
			known := production.Input{StageAreaSqm: 100}
			mixed := garbage
			mixed.StageAreaSqm = known.StageAreaSqm
			a, b := est.Estimate(mixed), est.Estimate(known)
			So(a.DetailScore, ShouldEqual, b.DetailScore)
			So(a.ConfidenceLevel, ShouldEqual, b.ConfidenceLevel)
			So(a.EstimatedMassKg, ShouldEqual, b.EstimatedMassKg)
			So(a.Insights, ShouldResemble, b.Insights)
		})
	})
}
