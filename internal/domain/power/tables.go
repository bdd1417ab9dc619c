package power

import "github.com/okian/footprint/internal/domain/impact"

// Supply modes, in display order.
const (
	Grid          impact.Mode = "grid"
	RenewableGrid impact.Mode = "renewable_grid"
	Diesel        impact.Mode = "diesel"
	HVO           impact.Mode = "hvo"
	BatterySolar  impact.Mode = "battery_solar"
)

// Modes is the closed mode set of the energy mix.
var Modes = []impact.Mode{Grid, RenewableGrid, Diesel, HVO, BatterySolar}

// generatorModes are the modes affected by generator sizing.
var generatorModes = map[impact.Mode]bool{Diesel: true, HVO: true}

// Power sources; the primary driver of the baseline.
const (
	SourceGrid          = "grid"
	SourceRenewable     = "renewable-tariff"
	SourceDiesel        = "diesel-generator"
	SourceHVO           = "hvo-generator"
	SourceHybridBattery = "hybrid-battery"
	SourceSolarBattery  = "solar-battery"

	DefaultSource = SourceDiesel
)

var sourceOrder = []string{SourceGrid, SourceRenewable, SourceDiesel, SourceHVO, SourceHybridBattery, SourceSolarBattery}

// Baselines are the starting energy mix per power source.
var Baselines = impact.BaselineTable{
	Modes:   Modes,
	Default: DefaultSource,
	Profiles: map[string]map[impact.Mode]float64{
		SourceGrid:          {Grid: 100},
		SourceRenewable:     {RenewableGrid: 100},
		SourceDiesel:        {Diesel: 100},
		SourceHVO:           {HVO: 100},
		SourceHybridBattery: {Diesel: 55, BatterySolar: 45},
		SourceSolarBattery:  {BatterySolar: 85, Diesel: 15},
	},
}

// Solar supplements add absolute points of solar-charged battery supply,
// displacing combustion and grid supply. The donor weights are split over
// the donors that hold share; when none does, normalization absorbs the
// supplement.
var (
	SolarPoints = impact.EnumTable{"none": 0, "small": 10, "medium": 20, "large": 35}
	SolarDonors = []impact.Donor{{Mode: Diesel, Weight: 0.7}, {Mode: HVO, Weight: 0.15}, {Mode: Grid, Weight: 0.15}}
)

var solarOrder = []string{"none", "small", "medium", "large"}

// Generator sizing multiplies generator fuel burn; an unknown sizing is
// assumed to be somewhat oversized.
var (
	SizingMultipliers = impact.EnumTable{"right-sized": 1.0, "unknown": 1.1, "oversized": 1.3}
	DefaultSizing     = "unknown"
)

var sizingOrder = []string{"right-sized", "unknown", "oversized"}

// Load management scales the energy drawn.
var LoadMultipliers = impact.EnumTable{"none": 1.0, "basic": 0.95, "active": 0.85}

var loadOrder = []string{"none", "basic", "active"}

// Emission factors in kg CO2e per kWh delivered.
var defaultFactors = impact.NewFactorTable(
	map[impact.Mode]float64{
		Grid:          0.21,
		RenewableGrid: 0.02,
		Diesel:        0.7,
		HVO:           0.07,
		BatterySolar:  0.04,
	},
	nil,
)

// Factors returns the default emission factor table.
func Factors() impact.FactorTable { return defaultFactors }

var modeLabels = map[impact.Mode]string{
	Grid:          "Grid electricity",
	RenewableGrid: "Renewable tariff electricity",
	Diesel:        "Diesel generation",
	HVO:           "HVO generation",
	BatterySolar:  "Solar-charged battery supply",
}
