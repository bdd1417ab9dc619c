package power_test

import (
	"strings"
	"testing"

	"github.com/okian/footprint/internal/domain/power"
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

func TestPowerEstimate(t *testing.T) {
	est := power.New()

	Convey("Given right-sized diesel generators over three days", t, func() {
		in := power.Input{PowerSource: power.SourceDiesel, GeneratorSizing: "right-sized", DailyLoadKWh: 1000, EventDays: 3}
		res := est.Estimate(in)

		Convey("Then mass is kWh x days x diesel factor", func() {
			So(power.EnergyKWh(in), ShouldEqual, 3000)
			So(res.EstimatedMassKg, ShouldEqual, 2100)
			So(res.PerUnitMassKg, ShouldAlmostEqual, 0.7)
			So(res.Components[string(power.Diesel)], ShouldEqual, 2100)
		})

		Convey("And the HVO swap is the leverage point", func() {
			So(hasLine(res.LeveragePoints, "Diesel generation is the largest source at 2,100 kg"), ShouldBeTrue)
			So(hasLine(res.LeveragePoints, "save about 1,890 kg"), ShouldBeTrue)
		})

		Convey("When the sizing is unknown", func() {
			in.GeneratorSizing = ""
			res := est.Estimate(in)

			Convey("Then fuel burn is assumed 10% higher", func() {
				So(res.EstimatedMassKg, ShouldEqual, 2310)
				So(hasLine(res.Assumptions, "generator sizing not given"), ShouldBeTrue)
			})
		})

		Convey("When load is actively managed", func() {
			in.LoadManagement = "active"
			So(est.Estimate(in).EstimatedMassKg, ShouldEqual, 1785)
		})

		Convey("When a large solar supplement is added", func() {
			in.SolarSupplement = "large"
			res := est.Estimate(in)
			So(res.EstimatedMassKg, ShouldBeLessThan, 2100)
			So(res.Distribution.Share(power.BatterySolar), ShouldAlmostEqual, 35, 1e-9)
			So(res.Distribution.Share(power.Diesel), ShouldAlmostEqual, 65, 1e-9)
			So(res.Distribution.Sum(), ShouldAlmostEqual, 100, 1e-6)
		})
	})

	Convey("Given grid supply with a large solar supplement", t, func() {
		res := est.Estimate(power.Input{PowerSource: power.SourceGrid, SolarSupplement: "large", DailyLoadKWh: 100})

		Convey("Then grid gives up the full 35 points", func() {
			So(res.Distribution.Share(power.BatterySolar), ShouldAlmostEqual, 35, 1e-9)
			So(res.Distribution.Share(power.Grid), ShouldAlmostEqual, 65, 1e-9)
		})
	})

	Convey("Given a hybrid battery system", t, func() {
		res := est.Estimate(power.Input{PowerSource: "Hybrid Battery", GeneratorSizing: "right-sized", DailyLoadKWh: 1000})

		Convey("Then each supply mode contributes by share", func() {
			So(res.Components[string(power.Diesel)], ShouldEqual, 385)
			So(res.Components[string(power.BatterySolar)], ShouldEqual, 18)
			So(res.EstimatedMassKg, ShouldEqual, 403)
			So(res.Scores[power.ScoreEfficiency], ShouldEqual, "fair")
			So(hasLine(res.Tradeoffs, "Battery systems"), ShouldBeTrue)
		})
	})

	Convey("A renewable tariff with solar and active management rates excellent", t, func() {
		res := est.Estimate(power.Input{PowerSource: power.SourceRenewable, SolarSupplement: "large", LoadManagement: "active"})
		So(res.Scores[power.ScoreEfficiency], ShouldEqual, "excellent")
	})

	Convey("Given an empty input", t, func() {
		res := est.Estimate(power.Input{})

		Convey("Then the default diesel baseline yields zero mass", func() {
			So(res.BaselineProfile, ShouldEqual, power.DefaultSource)
			So(res.EstimatedMassKg, ShouldEqual, 0)
			So(res.ConfidenceLevel, ShouldEqual, "low")
			So(res.Len(), ShouldEqual, 1)
		})
	})

	Convey("Describe lists every power source", t, func() {
		cat := est.Describe()
		So(cat.Fields[0].Values, ShouldHaveLength, 6)
		So(cat.Steps, ShouldResemble, []string{power.StepSolar})
	})
}

func TestUnrecognisedValues(t *testing.T) {
	est := power.New()

	Convey("Given only unrecognised enum values", t, func() {
		garbage := power.Input{PowerSource: "fusion", SolarSupplement: "huge", GeneratorSizing: "tiny", LoadManagement: "psychic"}
		res := est.Estimate(garbage)
		empty := est.Estimate(power.Input{})

		Convey("Then the result reads exactly like an empty input", func() {
			So(power.DetailScore(garbage), ShouldEqual, 0)
			So(res.DetailScore, ShouldEqual, empty.DetailScore)
			So(res.ConfidenceLevel, ShouldEqual, "low")
			So(res.Scores, ShouldResemble, empty.Scores)
			So(res.Insights, ShouldResemble, empty.Insights)
			So(res.LeveragePoints[0], ShouldStartWith, "Not enough detail")
		})

		Convey("And alongside real figures they add nothing", func() {
			known := power.Input{DailyLoadKWh: 500, EventDays: 2}
			mixed := garbage
			mixed.DailyLoadKWh = known.DailyLoadKWh
			mixed.EventDays = known.EventDays
			a, b := est.Estimate(mixed), est.Estimate(known)
			So(a.DetailScore, ShouldEqual, b.DetailScore)
			So(a.ConfidenceLevel, ShouldEqual, b.ConfidenceLevel)
			So(a.EstimatedMassKg, ShouldEqual, b.EstimatedMassKg)
			So(a.Insights, ShouldResemble, b.Insights)
		})
	})
}
