package power

import "github.com/okian/footprint/internal/domain/impact"

// ScoreEfficiency is the Scores key of the power efficiency rating.
const ScoreEfficiency = "efficiencyScore"

// Detail points per populated field.
const (
	PointsSource = 3
	PointsLoad   = 3
	PointsDays   = 2
	PointsSolar  = 1
	PointsSizing = 1
	PointsManage = 1
)

// Confidence thresholds (inclusive lower bounds).
const (
	ConfidenceHighMin   = 8
	ConfidenceMediumMin = 4
)

// Efficiency thresholds (inclusive lower bounds).
const (
	EfficiencyExcellentMin = 9
	EfficiencyGoodMin      = 6
	EfficiencyFairMin      = 3
)

// ConfidenceBands rates how much detail the caller supplied.
var ConfidenceBands = impact.NewBands("low",
	impact.Band{Min: ConfidenceHighMin, Label: "high"},
	impact.Band{Min: ConfidenceMediumMin, Label: "medium"},
)

// EfficiencyBands rates the supply and load practice.
var EfficiencyBands = impact.NewBands("poor",
	impact.Band{Min: EfficiencyExcellentMin, Label: "excellent"},
	impact.Band{Min: EfficiencyGoodMin, Label: "good"},
	impact.Band{Min: EfficiencyFairMin, Label: "fair"},
)

var detailFields = []impact.DetailPoints[Input]{
	{Field: "powerSource", Points: PointsSource, Present: func(in Input) bool { return impact.Given(in.PowerSource) }},
	{Field: "dailyLoadKWh", Points: PointsLoad, Present: func(in Input) bool { return impact.GivenNumber(in.DailyLoadKWh) }},
	{Field: "eventDays", Points: PointsDays, Present: func(in Input) bool { return impact.GivenNumber(in.EventDays) }},
	{Field: "solarSupplement", Points: PointsSolar, Present: func(in Input) bool { return impact.Given(in.SolarSupplement) }},
	{Field: "generatorSizing", Points: PointsSizing, Present: func(in Input) bool { return impact.Given(in.GeneratorSizing) }},
	{Field: "loadManagement", Points: PointsManage, Present: func(in Input) bool { return impact.Given(in.LoadManagement) }},
}

var efficiencyPoints = []impact.CategoryPoints[Input]{
	{
		Field: "powerSource",
		Value: func(in Input) string { return in.PowerSource },
		Points: map[string]int{
			SourceRenewable: 5, SourceSolarBattery: 5, SourceHVO: 4,
			SourceHybridBattery: 3, SourceGrid: 2, SourceDiesel: 0,
		},
	},
	{
		Field:  "solarSupplement",
		Value:  func(in Input) string { return in.SolarSupplement },
		Points: map[string]int{"small": 1, "medium": 2, "large": 3},
	},
	{
		Field:  "generatorSizing",
		Value:  func(in Input) string { return in.GeneratorSizing },
		Points: map[string]int{"right-sized": 2},
	},
	{
		Field:  "loadManagement",
		Value:  func(in Input) string { return in.LoadManagement },
		Points: map[string]int{"basic": 1, "active": 2},
	},
}

// recognised clears every enum field whose value is outside its vocabulary.
func recognised(in Input) Input {
	in.PowerSource = impact.Recognised(in.PowerSource, Baselines.Has(in.PowerSource))
	in.SolarSupplement = impact.Recognised(in.SolarSupplement, SolarPoints.Known(in.SolarSupplement))
	in.GeneratorSizing = impact.Recognised(in.GeneratorSizing, SizingMultipliers.Known(in.GeneratorSizing))
	in.LoadManagement = impact.Recognised(in.LoadManagement, LoadMultipliers.Known(in.LoadManagement))
	return in
}

// DetailScore sums the detail points of every populated field. Unrecognised
// enum values earn nothing.
func DetailScore(in Input) int {
	return impact.DetailScore(recognised(in), detailFields)
}

// EfficiencyScore sums the efficiency points of the categorical fields.
func EfficiencyScore(in Input) int {
	return impact.CategoryScore(in, efficiencyPoints)
}
