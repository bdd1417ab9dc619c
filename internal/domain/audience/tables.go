package audience

import "github.com/okian/footprint/internal/domain/impact"

// Travel modes, in display order.
const (
	Walk      impact.Mode = "walk"
	Bike      impact.Mode = "bike"
	Transit   impact.Mode = "transit"
	Shuttle   impact.Mode = "shuttle"
	Rideshare impact.Mode = "rideshare"
	CarSolo   impact.Mode = "car_solo"
	CarShared impact.Mode = "car_shared"
	Air       impact.Mode = "air"
)

// Modes is the closed mode set of the audience distribution.
var Modes = []impact.Mode{Walk, Bike, Transit, Shuttle, Rideshare, CarSolo, CarShared, Air}

// Venue location types; the primary driver of the baseline.
const (
	UrbanCore         = "urban-core"
	UrbanEdge         = "urban-edge"
	Suburban          = "suburban"
	RemoteDestination = "remote-destination"

	// DefaultLocation is used when venueLocationType is missing or unknown.
	DefaultLocation = Suburban
)

var locationOrder = []string{UrbanCore, UrbanEdge, Suburban, RemoteDestination}

// Baselines are the starting mode shares per venue location type. Each row
// sums to 100.
var Baselines = impact.BaselineTable{
	Modes:   Modes,
	Default: DefaultLocation,
	Profiles: map[string]map[impact.Mode]float64{
		UrbanCore:         {Walk: 15, Bike: 8, Transit: 42, Rideshare: 8, CarSolo: 16, CarShared: 11},
		UrbanEdge:         {Walk: 7, Bike: 5, Transit: 28, Rideshare: 6, CarSolo: 34, CarShared: 20},
		Suburban:          {Walk: 3, Bike: 2, Transit: 10, Rideshare: 5, CarSolo: 50, CarShared: 30},
		RemoteDestination: {Walk: 1, Bike: 1, Transit: 2, Shuttle: 6, Rideshare: 2, CarSolo: 52, CarShared: 36},
	},
}

// DefaultDistanceKm is the assumed one-way trip length per attendee when the
// caller supplies none.
var DefaultDistanceKm = map[string]float64{
	UrbanCore:         12,
	UrbanEdge:         20,
	Suburban:          30,
	RemoteDestination: 150,
}

// Transit accessibility multiplies the transit share. The delta is taken
// from solo and shared cars.
var (
	TransitMultipliers = impact.EnumTable{"excellent": 1.5, "good": 1.2, "limited": 0.8, "none": 0.3}
	TransitDonors      = []impact.Donor{{Mode: CarSolo, Weight: 0.6}, {Mode: CarShared, Weight: 0.4}}
)

// Parking strategy multiplies the solo-car share. Drivers priced out move to
// shared cars, transit and drop-offs.
var (
	ParkingMultipliers = impact.EnumTable{"abundant-free": 1.1, "paid": 0.85, "limited": 0.65, "none": 0.3}
	ParkingDonors      = []impact.Donor{{Mode: CarShared, Weight: 0.4}, {Mode: Transit, Weight: 0.35}, {Mode: Rideshare, Weight: 0.25}}
)

// Shuttle service adds absolute points to the shuttle share.
var (
	ShuttlePoints = impact.EnumTable{"none": 0, "limited": 5, "scheduled": 10, "comprehensive": 18}
	ShuttleDonors = []impact.Donor{{Mode: CarSolo, Weight: 0.7}, {Mode: CarShared, Weight: 0.3}}
)

// Draw geography assigns the air share outright.
var AirShareByDraw = impact.EnumTable{"local": 0, "regional": 2, "national": 10, "international": 25}

// Carpool incentives multiply the solo-car share; every driver who stops
// driving alone joins a shared car.
var (
	CarpoolMultipliers = impact.EnumTable{"none": 1, "light": 0.95, "moderate": 0.85, "strong": 0.7}
	CarpoolDonors      = []impact.Donor{{Mode: CarShared, Weight: 1}}
)

// Ordering used when listing enum values.
var (
	transitOrder = []string{"excellent", "good", "limited", "none"}
	parkingOrder = []string{"abundant-free", "paid", "limited", "none"}
	shuttleOrder = []string{"none", "limited", "scheduled", "comprehensive"}
	drawOrder    = []string{"local", "regional", "national", "international"}
	carpoolOrder = []string{"none", "light", "moderate", "strong"}
	activeOrder  = []string{"none", "basic", "good", "excellent"}
)

// Emission factors in kg CO2e per passenger-km.
var defaultFactors = impact.NewFactorTable(
	map[impact.Mode]float64{
		Walk:      0,
		Bike:      0,
		Transit:   0.041,
		Shuttle:   0.027,
		Rideshare: 0.21,
		CarSolo:   0.17,
		CarShared: 0.085,
	},
	map[impact.Mode]impact.HaulBands{
		Air: {ShortBelowKm: 500, LongAboveKm: 1500, Short: 0.246, Medium: 0.151, Long: 0.147},
	},
)

// Factors returns the default emission factor table.
func Factors() impact.FactorTable { return defaultFactors }

var modeLabels = map[impact.Mode]string{
	Walk:      "Walking",
	Bike:      "Cycling",
	Transit:   "Public transit",
	Shuttle:   "Event shuttles",
	Rideshare: "Taxis and ride-hailing",
	CarSolo:   "Solo driving",
	CarShared: "Shared cars",
	Air:       "Air travel",
}
