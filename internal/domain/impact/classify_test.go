package impact_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/footprint/internal/domain/impact"
	. "github.com/smartystreets/goconvey/convey"
)

func TestBands(t *testing.T) {
	Convey("Given bands declared out of order", t, func() {
		b := impact.NewBands("poor",
			impact.Band{Min: 4, Label: "fair"},
			impact.Band{Min: 12, Label: "excellent"},
			impact.Band{Min: 8, Label: "good"},
		)

		Convey("Then lower bounds are inclusive and the highest band wins", func() {
			So(b.Classify(-1), ShouldEqual, "poor")
			So(b.Classify(3), ShouldEqual, "poor")
			So(b.Classify(4), ShouldEqual, "fair")
			So(b.Classify(8), ShouldEqual, "good")
			So(b.Classify(11), ShouldEqual, "good")
			So(b.Classify(12), ShouldEqual, "excellent")
			So(b.Classify(99), ShouldEqual, "excellent")
		})

		Convey("And labels run from highest to floor", func() {
			So(b.Labels(), ShouldResemble, []string{"excellent", "good", "fair", "poor"})
		})
	})
}

func TestScores(t *testing.T) {
	detail := []impact.DetailPoints[probe]{
		{Field: "level", Points: 3, Present: func(p probe) bool { return impact.Given(p.Level) }},
		{Field: "driver", Points: 2, Present: func(p probe) bool { return impact.Given(p.Driver) }},
	}
	category := []impact.CategoryPoints[probe]{
		{Field: "level", Value: func(p probe) string { return p.Level }, Points: map[string]int{"high": 4, "low": 1}},
	}

	Convey("Detail points count populated fields only", t, func() {
		So(impact.DetailScore(probe{}, detail), ShouldEqual, 0)
		So(impact.DetailScore(probe{Level: "x"}, detail), ShouldEqual, 3)
		So(impact.DetailScore(probe{Level: "x", Driver: "y"}, detail), ShouldEqual, 5)
		So(impact.DetailScore(probe{Level: "   "}, detail), ShouldEqual, 0)
	})

	Convey("Category points look values up through Key", t, func() {
		So(impact.CategoryScore(probe{Level: "HIGH"}, category), ShouldEqual, 4)
		So(impact.CategoryScore(probe{Level: "unknown"}, category), ShouldEqual, 0)
	})

	Convey("GivenNumber rejects zero and negatives", t, func() {
		So(impact.GivenNumber(0), ShouldBeFalse)
		So(impact.GivenNumber(-1), ShouldBeFalse)
		So(impact.GivenNumber(0.5), ShouldBeTrue)
	})
}

func TestGenerate(t *testing.T) {
	rules := []impact.Rule[int]{
		{Name: "big", Category: impact.Leverage, When: func(n int) bool { return n > 10 }, Say: func(int) string { return "big" }},
		{Name: "any", Category: impact.Control, When: func(int) bool { return true }, Say: func(int) string { return "first" }},
		{Name: "any-2", Category: impact.Control, When: func(int) bool { return true }, Say: func(int) string { return "second" }},
		{Name: "odd", Category: impact.Tradeoff, When: func(n int) bool { return n%2 == 1 }, Say: func(int) string { return "odd" }},
	}

	Convey("Given an ordered rule table", t, func() {
		Convey("Then lines land in their category in rule order", func() {
			out := impact.Generate(11, rules)
			So(out.WhatYouControl, ShouldResemble, []string{"first", "second"})
			So(out.LeveragePoints, ShouldResemble, []string{"big"})
			So(out.Tradeoffs, ShouldResemble, []string{"odd"})
			So(out.WhatYouInfluence, ShouldNotBeNil)
			So(out.WhatYouInfluence, ShouldBeEmpty)
			So(out.Len(), ShouldEqual, 4)
		})

		Convey("And repeated calls yield identical lists", func() {
			So(impact.Generate(4, rules), ShouldResemble, impact.Generate(4, rules))
		})

		Convey("And empty lists serialise as arrays, not null", func() {
			b, err := json.Marshal(impact.Generate(2, nil))
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `{"whatYouControl":[],"whatYouInfluence":[],"leveragePoints":[],"tradeoffs":[]}`)
		})
	})

	Convey("Categories name their JSON list", t, func() {
		So(impact.Control.String(), ShouldEqual, "whatYouControl")
		So(impact.Tradeoff.String(), ShouldEqual, "tradeoffs")
	})
}

func TestResult(t *testing.T) {
	Convey("Given a fresh result", t, func() {
		r := impact.NewResult("demo", "unit")

		Convey("When setting mass from fractional parts", func() {
			r.SetMass(3, impact.Component{Name: "x", MassKg: 1.4}, impact.Component{Name: "y", MassKg: 2.6})

			Convey("Then components round first and the total is their sum", func() {
				So(r.Components["x"], ShouldEqual, 1)
				So(r.Components["y"], ShouldEqual, 3)
				So(r.EstimatedMassKg, ShouldEqual, 4)
				So(r.PerUnitMassKg, ShouldEqual, 4.0/3)
			})
		})

		Convey("When the scale is zero", func() {
			r.SetMass(0, impact.Component{Name: "x", MassKg: 0})
			So(r.EstimatedMassKg, ShouldEqual, 0)
			So(r.PerUnitMassKg, ShouldEqual, 0)
		})

		Convey("Then lists serialise as empty arrays", func() {
			b, err := json.Marshal(r)
			So(err, ShouldBeNil)
			var raw map[string]any
			So(json.Unmarshal(b, &raw), ShouldBeNil)
			So(raw["assumptions"], ShouldResemble, []any{})
			So(raw["tradeoffs"], ShouldResemble, []any{})
			So(raw["facet"], ShouldEqual, "demo")
		})
	})
}
