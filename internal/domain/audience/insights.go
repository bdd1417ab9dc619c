package audience

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/impact"
)

// Thresholds used by the insight rules.
const (
	soloShareHighPct      = 40.0
	airMassDominantPct    = 50.0
	leverageShiftPct      = 10.0
	smallAudience         = 500.0
	shuttleRelevantShare  = 1.0
	activeTravelNoticePct = 5.0
)

// view is what the insight rules read: the input with unrecognised values
// cleared, plus everything the pipeline and aggregator resolved from it.
type view struct {
	in         Input
	location   string
	dist       impact.Distribution
	byModeKg   map[impact.Mode]float64
	totalKg    float64
	distanceKm float64
	attendance float64
	detail     int
	factors    impact.FactorTable
}

func newView(in Input, r impact.Resolution, byMode map[impact.Mode]float64, distance float64, res impact.Result, factors impact.FactorTable) view {
	return view{
		in:         in,
		location:   r.Baseline,
		dist:       r.Distribution,
		byModeKg:   byMode,
		totalKg:    res.EstimatedMassKg,
		distanceKm: distance,
		attendance: res.Scale,
		detail:     res.DetailScore,
		factors:    factors,
	}
}

func (v view) share(m impact.Mode) float64 { return v.dist.Share(m) }

func (v view) massShare(m impact.Mode) float64 {
	if v.totalKg == 0 {
		return 0
	}
	return v.byModeKg[m] / v.totalKg * 100
}

func (v view) topEmitter() impact.Mode {
	var (
		top  impact.Mode
		best float64
	)
	for _, m := range Modes {
		if v.byModeKg[m] > best {
			top, best = m, v.byModeKg[m]
		}
	}
	return top
}

// soloToSharedSavingKg is the saving from moving leverageShiftPct points of
// attendees from solo to shared cars.
func (v view) soloToSharedSavingKg() float64 {
	perKm := v.factors.Factor(CarSolo, v.distanceKm) - v.factors.Factor(CarShared, v.distanceKm)
	return leverageShiftPct / 100 * v.attendance * v.distanceKm * perKm
}

func (v view) is(field, value string) bool { return impact.Key(field) == value }

// rules are evaluated in order; the order is the display order.
var rules = []impact.Rule[view]{
	{
		Name:     "not-enough-detail",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.detail == 0 },
		Say: func(view) string {
			return "Not enough detail to estimate audience travel yet: add expected attendance and the venue location type to get started."
		},
	},
	{
		Name:     "parking-strategy-set",
		Category: impact.Control,
		When:     func(v view) bool { return impact.Given(v.in.ParkingStrategy) },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s parking strategy shapes solo driving, which now accounts for %.0f%% of arrivals.",
				impact.Key(v.in.ParkingStrategy), v.share(CarSolo))
		},
	},
	{
		Name:     "parking-strategy-unset",
		Category: impact.Control,
		When: func(v view) bool {
			return !impact.Given(v.in.ParkingStrategy) && impact.GivenNumber(v.in.ExpectedAttendance)
		},
		Say: func(view) string {
			return "You set the parking strategy; pricing or capping parking is the most direct brake on solo driving."
		},
	},
	{
		Name:     "shuttle-running",
		Category: impact.Control,
		When:     func(v view) bool { return v.share(Shuttle) >= shuttleRelevantShare && impact.Given(v.in.ShuttleService) },
		Say: func(v view) string {
			return fmt.Sprintf("Your %s shuttle service carries an estimated %.0f%% of attendees.",
				impact.Key(v.in.ShuttleService), v.share(Shuttle))
		},
	},
	{
		Name:     "shuttle-missing",
		Category: impact.Control,
		When: func(v view) bool {
			far := v.location == Suburban || v.location == RemoteDestination
			none := !impact.Given(v.in.ShuttleService) || v.is(v.in.ShuttleService, "none")
			return far && none && impact.Given(v.in.VenueLocationType)
		},
		Say: func(v view) string {
			return fmt.Sprintf("A shuttle from the nearest transit hub is within your control and suits a %s venue.", v.location)
		},
	},
	{
		Name:     "carpool-missing",
		Category: impact.Control,
		When: func(v view) bool {
			none := !impact.Given(v.in.CarpoolIncentive) || v.is(v.in.CarpoolIncentive, "none")
			return none && impact.GivenNumber(v.in.ExpectedAttendance)
		},
		Say: func(view) string {
			return "Carpool incentives such as reserved bays or ticket discounts are yours to offer; none are in place yet."
		},
	},
	{
		Name:     "bundle-transit",
		Category: impact.Control,
		When: func(v view) bool {
			return v.is(v.in.TransitAccessibility, "excellent") || v.is(v.in.TransitAccessibility, "good")
		},
		Say: func(v view) string {
			return fmt.Sprintf("Bundling transit fares into the ticket helps hold the %.0f%% transit share.", v.share(Transit))
		},
	},
	{
		Name:     "attendee-mode-choice",
		Category: impact.Influence,
		When:     func(v view) bool { return v.detail > 0 && v.share(CarSolo) > 0 },
		Say: func(v view) string {
			return fmt.Sprintf("Attendees choose how to travel; pre-event messaging influences the %.0f%% expected to drive alone.", v.share(CarSolo))
		},
	},
	{
		Name:     "draw-geography",
		Category: impact.Influence,
		When: func(v view) bool {
			return v.is(v.in.DrawGeography, "national") || v.is(v.in.DrawGeography, "international")
		},
		Say: func(v view) string {
			return fmt.Sprintf("Where attendees come from sets the %.0f%% air share; regional marketing and streaming options influence it.", v.share(Air))
		},
	},
	{
		Name:     "active-travel",
		Category: impact.Influence,
		When: func(v view) bool {
			return impact.Given(v.in.ActiveTravelInfrastructure) && v.share(Walk)+v.share(Bike) >= activeTravelNoticePct
		},
		Say: func(v view) string {
			return fmt.Sprintf("Walking and cycling make up %.0f%% of trips; secure bike parking and lit routes encourage more.",
				v.share(Walk)+v.share(Bike))
		},
	},
	{
		Name:     "top-emitter",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 },
		Say: func(v view) string {
			m := v.topEmitter()
			return fmt.Sprintf("%s is the largest source at %s kg CO2e (%.0f%% of audience travel).",
				modeLabels[m], equivalency.FormatKg(v.byModeKg[m]), v.massShare(m))
		},
	},
	{
		Name:     "solo-car-shift",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 && v.share(CarSolo) >= soloShareHighPct },
		Say: func(v view) string {
			return fmt.Sprintf("Solo driving is %.0f%% of arrivals; moving %.0f points of it into shared cars saves about %s kg CO2e.",
				v.share(CarSolo), leverageShiftPct, equivalency.FormatKg(v.soloToSharedSavingKg()))
		},
	},
	{
		Name:     "air-dominant",
		Category: impact.Leverage,
		When:     func(v view) bool { return v.totalKg > 0 && v.massShare(Air) >= airMassDominantPct },
		Say: func(v view) string {
			return fmt.Sprintf("Air travel is %.0f%% of attendees but %.0f%% of emissions; rail partnerships or regional satellite events cut it most.",
				v.share(Air), v.massShare(Air))
		},
	},
	{
		Name:     "transit-gap",
		Category: impact.Leverage,
		When: func(v view) bool {
			urban := v.location == UrbanCore || v.location == UrbanEdge
			poor := v.is(v.in.TransitAccessibility, "limited") || v.is(v.in.TransitAccessibility, "none")
			return urban && poor
		},
		Say: func(v view) string {
			return fmt.Sprintf("An %s venue with %s transit leaves its biggest advantage unused; extra late-night services would lift transit use.",
				v.location, impact.Key(v.in.TransitAccessibility))
		},
	},
	{
		Name:     "parking-access",
		Category: impact.Tradeoff,
		When: func(v view) bool {
			return v.is(v.in.ParkingStrategy, "none") || v.is(v.in.ParkingStrategy, "limited")
		},
		Say: func(view) string {
			return "Restricting parking lowers emissions but can exclude attendees with mobility needs; keep accessible bays and drop-off points."
		},
	},
	{
		Name:     "shuttle-utilisation",
		Category: impact.Tradeoff,
		When: func(v view) bool {
			return v.is(v.in.ShuttleService, "comprehensive") && impact.GivenNumber(v.in.ExpectedAttendance) &&
				v.in.ExpectedAttendance < smallAudience
		},
		Say: func(view) string {
			return "A comprehensive shuttle for a small audience risks running near-empty; size the fleet to confirmed demand."
		},
	},
	{
		Name:     "remote-venue",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return impact.Key(v.in.VenueLocationType) == RemoteDestination },
		Say: func(view) string {
			return "A remote destination adds character but lengthens every trip; the venue choice outweighs most on-site measures."
		},
	},
	{
		Name:     "international-draw",
		Category: impact.Tradeoff,
		When:     func(v view) bool { return v.is(v.in.DrawGeography, "international") },
		Say: func(view) string {
			return "An international draw raises the event's profile, and its flights will dominate the travel footprint."
		},
	},
}

// RuleNames lists the insight rules in evaluation order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}
