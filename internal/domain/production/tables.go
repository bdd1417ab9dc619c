package production

import "github.com/okian/footprint/internal/domain/impact"

// Material modes, in display order.
const (
	Reused    impact.Mode = "reused"
	Timber    impact.Mode = "timber"
	Steel     impact.Mode = "steel"
	Aluminium impact.Mode = "aluminium"
	Plastics  impact.Mode = "plastics"
)

// Modes is the closed mode set of the material mix.
var Modes = []impact.Mode{Reused, Timber, Steel, Aluminium, Plastics}

// newMaterials are the modes a primary material can displace.
var newMaterials = []impact.Mode{Timber, Steel, Aluminium, Plastics}

// Set design approaches; the primary driver of the baseline.
const (
	RentalReuse = "rental-reuse"
	Hybrid      = "hybrid"
	CustomBuild = "custom-build"

	DefaultApproach = Hybrid
)

var approachOrder = []string{RentalReuse, Hybrid, CustomBuild}

// Baselines are the starting material mix per design approach.
var Baselines = impact.BaselineTable{
	Modes:   Modes,
	Default: DefaultApproach,
	Profiles: map[string]map[impact.Mode]float64{
		RentalReuse: {Reused: 80, Timber: 10, Steel: 5, Aluminium: 3, Plastics: 2},
		Hybrid:      {Reused: 40, Timber: 25, Steel: 15, Aluminium: 10, Plastics: 10},
		CustomBuild: {Reused: 10, Timber: 35, Steel: 25, Aluminium: 15, Plastics: 15},
	},
}

// PrimaryMaterialMultiplier doubles the share of the named primary material.
const PrimaryMaterialMultiplier = 2.0

var materialOrder = []string{string(Timber), string(Steel), string(Aluminium), string(Plastics)}

// EndOfLifeMultipliers scale material emissions by what happens after the show.
var EndOfLifeMultipliers = impact.EnumTable{"landfill": 1.0, "recycle": 0.8, "donate": 0.65, "reuse": 0.6}

// DefaultEndOfLife applies when no plan is given.
const DefaultEndOfLife = "landfill"

var endOfLifeOrder = []string{"landfill", "recycle", "donate", "reuse"}

// PrintedKg is the fixed footprint of printed signage and collateral.
var PrintedKg = impact.EnumTable{"none": 0, "minimal": 20, "standard": 80, "extensive": 250}

var printOrder = []string{"none", "minimal", "standard", "extensive"}

// FreightKgPerTonneKm is the road freight factor.
const FreightKgPerTonneKm = 0.105

// Emission factors in kg CO2e per square metre of staging.
var defaultFactors = impact.NewFactorTable(
	map[impact.Mode]float64{
		Reused:    2,
		Timber:    25,
		Steel:     60,
		Aluminium: 90,
		Plastics:  45,
	},
	nil,
)

// Factors returns the default emission factor table.
func Factors() impact.FactorTable { return defaultFactors }
