package crew

import "github.com/okian/footprint/internal/domain/impact"

// Crew travel modes, in display order.
const (
	Car   impact.Mode = "car"
	Van   impact.Mode = "van"
	Rail  impact.Mode = "rail"
	Coach impact.Mode = "coach"
	Air   impact.Mode = "air"
)

// Modes is the closed mode set of the crew travel distribution.
var Modes = []impact.Mode{Car, Van, Rail, Coach, Air}

// Staffing models; the primary driver of the baseline.
const (
	LocalHire   = "local-hire"
	Hybrid      = "hybrid"
	FullTouring = "full-touring"

	DefaultStaffing = Hybrid
)

var staffingOrder = []string{LocalHire, Hybrid, FullTouring}

// Baselines are the starting travel shares per staffing model.
var Baselines = impact.BaselineTable{
	Modes:   Modes,
	Default: DefaultStaffing,
	Profiles: map[string]map[impact.Mode]float64{
		LocalHire:   {Car: 70, Van: 20, Rail: 10},
		Hybrid:      {Car: 40, Van: 20, Rail: 10, Coach: 10, Air: 20},
		FullTouring: {Car: 5, Van: 15, Rail: 5, Coach: 40, Air: 35},
	},
}

// DefaultDistanceKm is the assumed travel distance per crew member.
var DefaultDistanceKm = map[string]float64{
	LocalHire:   30,
	Hybrid:      400,
	FullTouring: 800,
}

// Accommodation strategies.
const (
	LocalCommute  = "local-commute"
	SharedHousing = "shared-housing"
	Hotel         = "hotel"
	TourBus       = "tour-bus"

	DefaultAccommodation = Hotel
)

var accommodationOrder = []string{LocalCommute, SharedHousing, Hotel, TourBus}

// CoachShareByAccommodation replaces the coach share: a tour bus carries the
// crew between stops.
var CoachShareByAccommodation = impact.EnumTable{TourBus: 60}

// NightFactors are kg CO2e per person-night.
var NightFactors = impact.EnumTable{LocalCommute: 0, SharedHousing: 8, Hotel: 14, TourBus: 6}

// ResidentShare is the fraction of the crew that needs a bed.
var ResidentShare = impact.EnumTable{LocalHire: 0.1, Hybrid: 0.5, FullTouring: 1.0}

// Travel policy multiplies the air share; displaced flights move to rail and
// coach.
var (
	PolicyMultipliers = impact.EnumTable{"unrestricted": 1, "rail-preferred": 0.5, "ground-only": 0.1}
	PolicyDonors      = []impact.Donor{{Mode: Rail, Weight: 0.6}, {Mode: Coach, Weight: 0.4}}
)

var policyOrder = []string{"unrestricted", "rail-preferred", "ground-only"}

// Emission factors in kg CO2e per passenger-km.
var defaultFactors = impact.NewFactorTable(
	map[impact.Mode]float64{
		Car:   0.17,
		Van:   0.1,
		Rail:  0.035,
		Coach: 0.027,
	},
	map[impact.Mode]impact.HaulBands{
		Air: {ShortBelowKm: 500, LongAboveKm: 1500, Short: 0.246, Medium: 0.151, Long: 0.147},
	},
)

// Factors returns the default emission factor table.
func Factors() impact.FactorTable { return defaultFactors }
