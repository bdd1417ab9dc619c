package food

import "github.com/okian/footprint/internal/domain/impact"

// ScoreMenu is the Scores key of the menu rating.
const ScoreMenu = "menuScore"

// Detail points per populated field.
const (
	PointsMenu      = 3
	PointsMeals     = 3
	PointsRedMeat   = 2
	PointsSourcing  = 2
	PointsService   = 1
	PointsWaste     = 1
	PointsServeware = 1
)

// Confidence thresholds (inclusive lower bounds).
const (
	ConfidenceHighMin   = 9
	ConfidenceMediumMin = 5
)

// Menu thresholds (inclusive lower bounds).
const (
	MenuExcellentMin = 8
	MenuGoodMin      = 5
	MenuFairMin      = 2
)

// ConfidenceBands rates how much detail the caller supplied.
var ConfidenceBands = impact.NewBands("low",
	impact.Band{Min: ConfidenceHighMin, Label: "high"},
	impact.Band{Min: ConfidenceMediumMin, Label: "medium"},
)

// MenuBands rates the menu and service choices.
var MenuBands = impact.NewBands("poor",
	impact.Band{Min: MenuExcellentMin, Label: "excellent"},
	impact.Band{Min: MenuGoodMin, Label: "good"},
	impact.Band{Min: MenuFairMin, Label: "fair"},
)

var detailFields = []impact.DetailPoints[Input]{
	{Field: "menuType", Points: PointsMenu, Present: func(in Input) bool { return impact.Given(in.MenuType) }},
	{Field: "mealsServed", Points: PointsMeals, Present: func(in Input) bool { return impact.GivenNumber(in.MealsServed) }},
	{Field: "redMeatPolicy", Points: PointsRedMeat, Present: func(in Input) bool { return impact.Given(in.RedMeatPolicy) }},
	{Field: "sourcing", Points: PointsSourcing, Present: func(in Input) bool { return impact.Given(in.Sourcing) }},
	{Field: "serviceModel", Points: PointsService, Present: func(in Input) bool { return impact.Given(in.ServiceModel) }},
	{Field: "wasteStrategy", Points: PointsWaste, Present: func(in Input) bool { return impact.Given(in.WasteStrategy) }},
	{Field: "servewareType", Points: PointsServeware, Present: func(in Input) bool { return impact.Given(in.ServewareType) }},
}

var menuPoints = []impact.CategoryPoints[Input]{
	{
		Field:  "menuType",
		Value:  func(in Input) string { return in.MenuType },
		Points: map[string]int{PlantBased: 4, Vegetarian: 3, Mixed: 1},
	},
	{
		Field:  "redMeatPolicy",
		Value:  func(in Input) string { return in.RedMeatPolicy },
		Points: map[string]int{"excluded": 3, "reduced": 2},
	},
	{
		Field:  "sourcing",
		Value:  func(in Input) string { return in.Sourcing },
		Points: map[string]int{"local-seasonal": 2},
	},
	{
		Field:  "wasteStrategy",
		Value:  func(in Input) string { return in.WasteStrategy },
		Points: map[string]int{"donation-and-composting": 2, "composting": 1, "donation": 1},
	},
}

// recognised clears every enum field whose value is outside its vocabulary.
func recognised(in Input) Input {
	in.MenuType = impact.Recognised(in.MenuType, Baselines.Has(in.MenuType))
	in.RedMeatPolicy = impact.Recognised(in.RedMeatPolicy, RedMeatMultipliers.Known(in.RedMeatPolicy))
	in.Sourcing = impact.Recognised(in.Sourcing, SourcingMultipliers.Known(in.Sourcing))
	in.ServiceModel = impact.Recognised(in.ServiceModel, ServiceMultipliers.Known(in.ServiceModel))
	in.WasteStrategy = impact.Recognised(in.WasteStrategy, WasteMultipliers.Known(in.WasteStrategy))
	in.ServewareType = impact.Recognised(in.ServewareType, ServewareKg.Known(in.ServewareType))
	return in
}

// DetailScore sums the detail points of every populated field. Unrecognised
// enum values earn nothing.
func DetailScore(in Input) int {
	return impact.DetailScore(recognised(in), detailFields)
}

// MenuScore sums the menu points of the categorical fields.
func MenuScore(in Input) int {
	return impact.CategoryScore(in, menuPoints)
}
