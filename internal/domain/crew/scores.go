package crew

import "github.com/okian/footprint/internal/domain/impact"

// ScoreLogistics is the Scores key of the crew logistics rating.
const ScoreLogistics = "logisticsScore"

// Detail points per populated field.
const (
	PointsStaffing      = 3
	PointsCrewSize      = 3
	PointsAccommodation = 2
	PointsPolicy        = 2
	PointsDays          = 2
	PointsDistance      = 2
)

// Confidence thresholds (inclusive lower bounds).
const (
	ConfidenceHighMin   = 10
	ConfidenceMediumMin = 5
)

// Logistics thresholds (inclusive lower bounds).
const (
	LogisticsExcellentMin = 7
	LogisticsGoodMin      = 4
	LogisticsFairMin      = 2
)

// ConfidenceBands rates how much detail the caller supplied.
var ConfidenceBands = impact.NewBands("low",
	impact.Band{Min: ConfidenceHighMin, Label: "high"},
	impact.Band{Min: ConfidenceMediumMin, Label: "medium"},
)

// LogisticsBands rates how low-carbon the crew arrangements are.
var LogisticsBands = impact.NewBands("poor",
	impact.Band{Min: LogisticsExcellentMin, Label: "excellent"},
	impact.Band{Min: LogisticsGoodMin, Label: "good"},
	impact.Band{Min: LogisticsFairMin, Label: "fair"},
)

var detailFields = []impact.DetailPoints[Input]{
	{Field: "staffingModel", Points: PointsStaffing, Present: func(in Input) bool { return impact.Given(in.StaffingModel) }},
	{Field: "totalCrewSize", Points: PointsCrewSize, Present: func(in Input) bool { return impact.GivenNumber(in.TotalCrewSize) }},
	{Field: "accommodationStrategy", Points: PointsAccommodation, Present: func(in Input) bool { return impact.Given(in.AccommodationStrategy) }},
	{Field: "travelPolicy", Points: PointsPolicy, Present: func(in Input) bool { return impact.Given(in.TravelPolicy) }},
	{Field: "days", Points: PointsDays, Present: func(in Input) bool {
		return impact.GivenNumber(in.BuildDays) || impact.GivenNumber(in.ShowDays) || impact.GivenNumber(in.StrikeDays)
	}},
	{Field: "averageTravelDistanceKm", Points: PointsDistance, Present: func(in Input) bool { return impact.GivenNumber(in.AverageTravelDistanceKm) }},
}

var logisticsPoints = []impact.CategoryPoints[Input]{
	{
		Field:  "staffingModel",
		Value:  func(in Input) string { return in.StaffingModel },
		Points: map[string]int{LocalHire: 3, Hybrid: 1},
	},
	{
		Field:  "travelPolicy",
		Value:  func(in Input) string { return in.TravelPolicy },
		Points: map[string]int{"ground-only": 3, "rail-preferred": 2},
	},
	{
		Field:  "accommodationStrategy",
		Value:  func(in Input) string { return in.AccommodationStrategy },
		Points: map[string]int{LocalCommute: 2, SharedHousing: 2, TourBus: 1},
	},
}

// recognised clears every enum field whose value is outside its vocabulary.
func recognised(in Input) Input {
	in.StaffingModel = impact.Recognised(in.StaffingModel, Baselines.Has(in.StaffingModel))
	in.AccommodationStrategy = impact.Recognised(in.AccommodationStrategy, NightFactors.Known(in.AccommodationStrategy))
	in.TravelPolicy = impact.Recognised(in.TravelPolicy, PolicyMultipliers.Known(in.TravelPolicy))
	return in
}

// DetailScore sums the detail points of every populated field. Unrecognised
// enum values earn nothing.
func DetailScore(in Input) int {
	return impact.DetailScore(recognised(in), detailFields)
}

// LogisticsScore sums the logistics points of the categorical fields.
func LogisticsScore(in Input) int {
	return impact.CategoryScore(in, logisticsPoints)
}
