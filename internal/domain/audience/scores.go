package audience

import "github.com/okian/footprint/internal/domain/impact"

// ScoreAccessibility is the Scores key of the accessibility rating.
const ScoreAccessibility = "accessibilityScore"

// Detail points per populated field. These are calibration values.
const (
	PointsLocation   = 3
	PointsAttendance = 3
	PointsDistance   = 2
	PointsTransit    = 2
	PointsParking    = 2
	PointsDraw       = 2
	PointsShuttle    = 1
	PointsCarpool    = 1
	PointsActive     = 1
)

// Confidence thresholds (inclusive lower bounds).
const (
	ConfidenceHighMin   = 12
	ConfidenceMediumMin = 6
)

// Accessibility thresholds (inclusive lower bounds).
const (
	AccessExcellentMin = 12
	AccessGoodMin      = 8
	AccessFairMin      = 4
)

// ConfidenceBands rates how much detail the caller supplied.
var ConfidenceBands = impact.NewBands("low",
	impact.Band{Min: ConfidenceHighMin, Label: "high"},
	impact.Band{Min: ConfidenceMediumMin, Label: "medium"},
)

// AccessibilityBands rates how easily attendees can arrive without a car.
var AccessibilityBands = impact.NewBands("poor",
	impact.Band{Min: AccessExcellentMin, Label: "excellent"},
	impact.Band{Min: AccessGoodMin, Label: "good"},
	impact.Band{Min: AccessFairMin, Label: "fair"},
)

var detailFields = []impact.DetailPoints[Input]{
	{Field: "venueLocationType", Points: PointsLocation, Present: func(in Input) bool { return impact.Given(in.VenueLocationType) }},
	{Field: "expectedAttendance", Points: PointsAttendance, Present: func(in Input) bool { return impact.GivenNumber(in.ExpectedAttendance) }},
	{Field: "averageTravelDistanceKm", Points: PointsDistance, Present: func(in Input) bool { return impact.GivenNumber(in.AverageTravelDistanceKm) }},
	{Field: "transitAccessibility", Points: PointsTransit, Present: func(in Input) bool { return impact.Given(in.TransitAccessibility) }},
	{Field: "parkingStrategy", Points: PointsParking, Present: func(in Input) bool { return impact.Given(in.ParkingStrategy) }},
	{Field: "drawGeography", Points: PointsDraw, Present: func(in Input) bool { return impact.Given(in.DrawGeography) }},
	{Field: "shuttleService", Points: PointsShuttle, Present: func(in Input) bool { return impact.Given(in.ShuttleService) }},
	{Field: "carpoolIncentive", Points: PointsCarpool, Present: func(in Input) bool { return impact.Given(in.CarpoolIncentive) }},
	{Field: "activeTravelInfrastructure", Points: PointsActive, Present: func(in Input) bool { return impact.Given(in.ActiveTravelInfrastructure) }},
}

var accessibilityPoints = []impact.CategoryPoints[Input]{
	{
		Field:  "venueLocationType",
		Value:  func(in Input) string { return in.VenueLocationType },
		Points: map[string]int{UrbanCore: 4, UrbanEdge: 3, Suburban: 1, RemoteDestination: 0},
	},
	{
		Field:  "transitAccessibility",
		Value:  func(in Input) string { return in.TransitAccessibility },
		Points: map[string]int{"excellent": 4, "good": 3, "limited": 1, "none": 0},
	},
	{
		Field:  "shuttleService",
		Value:  func(in Input) string { return in.ShuttleService },
		Points: map[string]int{"comprehensive": 3, "scheduled": 2, "limited": 1},
	},
	{
		Field:  "activeTravelInfrastructure",
		Value:  func(in Input) string { return in.ActiveTravelInfrastructure },
		Points: map[string]int{"excellent": 3, "good": 2, "basic": 1},
	},
}

// recognised clears every enum field whose value is outside its vocabulary.
func recognised(in Input) Input {
	in.VenueLocationType = impact.Recognised(in.VenueLocationType, Baselines.Has(in.VenueLocationType))
	in.TransitAccessibility = impact.Recognised(in.TransitAccessibility, TransitMultipliers.Known(in.TransitAccessibility))
	in.ParkingStrategy = impact.Recognised(in.ParkingStrategy, ParkingMultipliers.Known(in.ParkingStrategy))
	in.ShuttleService = impact.Recognised(in.ShuttleService, ShuttlePoints.Known(in.ShuttleService))
	in.DrawGeography = impact.Recognised(in.DrawGeography, AirShareByDraw.Known(in.DrawGeography))
	in.CarpoolIncentive = impact.Recognised(in.CarpoolIncentive, CarpoolMultipliers.Known(in.CarpoolIncentive))
	in.ActiveTravelInfrastructure = impact.Recognised(in.ActiveTravelInfrastructure,
		impact.OneOf(in.ActiveTravelInfrastructure, activeOrder...))
	return in
}

// DetailScore sums the detail points of every populated field. Unrecognised
// enum values earn nothing.
func DetailScore(in Input) int {
	return impact.DetailScore(recognised(in), detailFields)
}

// AccessibilityScore sums the accessibility points of the categorical fields.
func AccessibilityScore(in Input) int {
	return impact.CategoryScore(in, accessibilityPoints)
}
