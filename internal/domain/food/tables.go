package food

import "github.com/okian/footprint/internal/domain/impact"

// Menu modes, in display order.
const (
	Plant       impact.Mode = "plant"
	DairyEgg    impact.Mode = "dairy_egg"
	PoultryFish impact.Mode = "poultry_fish"
	RedMeat     impact.Mode = "red_meat"
)

// Modes is the closed mode set of the menu mix.
var Modes = []impact.Mode{Plant, DairyEgg, PoultryFish, RedMeat}

// Menu types; the primary driver of the baseline.
const (
	PlantBased = "plant-based"
	Vegetarian = "vegetarian"
	Mixed      = "mixed"
	MeatHeavy  = "meat-heavy"

	DefaultMenu = Mixed
)

var menuOrder = []string{PlantBased, Vegetarian, Mixed, MeatHeavy}

// Baselines are the starting meal mix per menu type.
var Baselines = impact.BaselineTable{
	Modes:   Modes,
	Default: DefaultMenu,
	Profiles: map[string]map[impact.Mode]float64{
		PlantBased: {Plant: 100},
		Vegetarian: {Plant: 60, DairyEgg: 40},
		Mixed:      {Plant: 35, DairyEgg: 20, PoultryFish: 25, RedMeat: 20},
		MeatHeavy:  {Plant: 15, DairyEgg: 15, PoultryFish: 30, RedMeat: 40},
	},
}

// Red meat policy multiplies the red meat share; the released meals become
// plant-based and poultry or fish dishes.
var (
	RedMeatMultipliers = impact.EnumTable{"none": 1, "reduced": 0.5, "excluded": 0}
	RedMeatDonors      = []impact.Donor{{Mode: Plant, Weight: 0.6}, {Mode: PoultryFish, Weight: 0.4}}
)

var redMeatOrder = []string{"none", "reduced", "excluded"}

// Independent multipliers of the per-meal footprint.
var (
	SourcingMultipliers = impact.EnumTable{"local-seasonal": 0.9, "mixed": 1.0, "conventional": 1.05, "imported": 1.2}
	ServiceMultipliers  = impact.EnumTable{"plated": 1.0, "food-trucks": 1.05, "grab-and-go": 1.1, "buffet": 1.15}
	WasteMultipliers    = impact.EnumTable{"none": 1.0, "composting": 0.95, "donation": 0.93, "donation-and-composting": 0.9}
)

var (
	sourcingOrder = []string{"local-seasonal", "mixed", "conventional", "imported"}
	serviceOrder  = []string{"plated", "food-trucks", "grab-and-go", "buffet"}
	wasteOrder    = []string{"none", "composting", "donation", "donation-and-composting"}
)

// ServewareKg is kg CO2e per meal for each serveware type.
var ServewareKg = impact.EnumTable{"reusable": 0.01, "compostable": 0.03, "single-use-plastic": 0.06}

// DefaultServeware applies when no serveware type is given.
const DefaultServeware = "compostable"

var servewareOrder = []string{"reusable", "compostable", "single-use-plastic"}

// Emission factors in kg CO2e per meal.
var defaultFactors = impact.NewFactorTable(
	map[impact.Mode]float64{
		Plant:       0.5,
		DairyEgg:    1.2,
		PoultryFish: 1.6,
		RedMeat:     5.5,
	},
	nil,
)

// Factors returns the default emission factor table.
func Factors() impact.FactorTable { return defaultFactors }

var modeLabels = map[impact.Mode]string{
	Plant:       "Plant-based dishes",
	DairyEgg:    "Dairy and egg dishes",
	PoultryFish: "Poultry and fish dishes",
	RedMeat:     "Red meat dishes",
}
