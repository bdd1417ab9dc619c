package production

import "github.com/okian/footprint/internal/domain/impact"

// ScoreCircularity is the Scores key of the circularity rating.
const ScoreCircularity = "circularityScore"

// Detail points per populated field.
const (
	PointsApproach  = 3
	PointsArea      = 3
	PointsMaterial  = 2
	PointsEndOfLife = 2
	PointsPrint     = 1
	PointsFreight   = 2
)

// Confidence thresholds (inclusive lower bounds).
const (
	ConfidenceHighMin   = 9
	ConfidenceMediumMin = 5
)

// Circularity thresholds (inclusive lower bounds).
const (
	CircularityExcellentMin = 7
	CircularityGoodMin      = 5
	CircularityFairMin      = 2
)

// ConfidenceBands rates how much detail the caller supplied.
var ConfidenceBands = impact.NewBands("low",
	impact.Band{Min: ConfidenceHighMin, Label: "high"},
	impact.Band{Min: ConfidenceMediumMin, Label: "medium"},
)

// CircularityBands rates how much of the build is kept in use.
var CircularityBands = impact.NewBands("poor",
	impact.Band{Min: CircularityExcellentMin, Label: "excellent"},
	impact.Band{Min: CircularityGoodMin, Label: "good"},
	impact.Band{Min: CircularityFairMin, Label: "fair"},
)

var detailFields = []impact.DetailPoints[Input]{
	{Field: "setDesignApproach", Points: PointsApproach, Present: func(in Input) bool { return impact.Given(in.SetDesignApproach) }},
	{Field: "stageAreaSqm", Points: PointsArea, Present: func(in Input) bool { return impact.GivenNumber(in.StageAreaSqm) }},
	{Field: "primaryMaterial", Points: PointsMaterial, Present: func(in Input) bool { return impact.Given(in.PrimaryMaterial) }},
	{Field: "endOfLifePlan", Points: PointsEndOfLife, Present: func(in Input) bool { return impact.Given(in.EndOfLifePlan) }},
	{Field: "printedMaterials", Points: PointsPrint, Present: func(in Input) bool { return impact.Given(in.PrintedMaterials) }},
	{Field: "freight", Points: PointsFreight, Present: func(in Input) bool {
		return impact.GivenNumber(in.FreightDistanceKm) && impact.GivenNumber(in.FreightTonnes)
	}},
}

var circularityPoints = []impact.CategoryPoints[Input]{
	{
		Field:  "setDesignApproach",
		Value:  func(in Input) string { return in.SetDesignApproach },
		Points: map[string]int{RentalReuse: 4, Hybrid: 2},
	},
	{
		Field:  "endOfLifePlan",
		Value:  func(in Input) string { return in.EndOfLifePlan },
		Points: map[string]int{"reuse": 4, "donate": 3, "recycle": 2},
	},
}

// recognised clears every enum field whose value is outside its vocabulary.
func recognised(in Input) Input {
	in.SetDesignApproach = impact.Recognised(in.SetDesignApproach, Baselines.Has(in.SetDesignApproach))
	in.PrimaryMaterial = impact.Recognised(in.PrimaryMaterial, impact.OneOf(in.PrimaryMaterial, materialOrder...))
	in.EndOfLifePlan = impact.Recognised(in.EndOfLifePlan, EndOfLifeMultipliers.Known(in.EndOfLifePlan))
	in.PrintedMaterials = impact.Recognised(in.PrintedMaterials, PrintedKg.Known(in.PrintedMaterials))
	return in
}

// DetailScore sums the detail points of every populated field. Unrecognised
// enum values earn nothing.
func DetailScore(in Input) int {
	return impact.DetailScore(recognised(in), detailFields)
}

// CircularityScore sums the circularity points of the categorical fields.
func CircularityScore(in Input) int {
	return impact.CategoryScore(in, circularityPoints)
}
