// Package audience estimates the travel footprint of an event's attendees.
//
// A venue location type selects a baseline mode split which is then adjusted,
// in a fixed order, by transit accessibility, parking strategy, shuttle
// service, draw geography and carpool incentives. The normalized split is
// combined with attendance, trip distance and per-mode emission factors.
package audience

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/impact"
)

const (
	// Facet is the registry name of this estimator.
	Facet = "audience"
	// Unit is what PerUnitMassKg is expressed per.
	Unit = "attendee"
)

// Input describes the audience side of an event. Every field is optional.
type Input struct {
	VenueLocationType          string  `json:"venueLocationType,omitempty" yaml:"venueLocationType,omitempty"`
	TransitAccessibility       string  `json:"transitAccessibility,omitempty" yaml:"transitAccessibility,omitempty"`
	ParkingStrategy            string  `json:"parkingStrategy,omitempty" yaml:"parkingStrategy,omitempty"`
	ShuttleService             string  `json:"shuttleService,omitempty" yaml:"shuttleService,omitempty"`
	DrawGeography              string  `json:"drawGeography,omitempty" yaml:"drawGeography,omitempty"`
	CarpoolIncentive           string  `json:"carpoolIncentive,omitempty" yaml:"carpoolIncentive,omitempty"`
	ActiveTravelInfrastructure string  `json:"activeTravelInfrastructure,omitempty" yaml:"activeTravelInfrastructure,omitempty"`
	ExpectedAttendance         float64 `json:"expectedAttendance,omitempty" yaml:"expectedAttendance,omitempty"`
	AverageTravelDistanceKm    float64 `json:"averageTravelDistanceKm,omitempty" yaml:"averageTravelDistanceKm,omitempty"`
}

// Step names of the canonical adjustment order.
const (
	StepTransit = "transit-accessibility"
	StepParking = "parking-strategy"
	StepShuttle = "shuttle-service"
	StepDraw    = "draw-geography"
	StepCarpool = "carpool-incentive"
)

// Pipeline is the canonical audience pipeline. Step order is significant:
// each step reads the distribution produced by the one before it.
var Pipeline = impact.Pipeline[Input]{
	Baseline: Baselines,
	Driver:   func(in Input) string { return in.VenueLocationType },
	Steps: []impact.Step[Input]{
		impact.MultiplierStep(StepTransit, "transitAccessibility",
			func(in Input) string { return in.TransitAccessibility },
			TransitMultipliers, Transit, TransitDonors...),
		impact.MultiplierStep(StepParking, "parkingStrategy",
			func(in Input) string { return in.ParkingStrategy },
			ParkingMultipliers, CarSolo, ParkingDonors...),
		impact.ShiftStep(StepShuttle, "shuttleService",
			func(in Input) string { return in.ShuttleService },
			ShuttlePoints, Shuttle, ShuttleDonors...),
		impact.ReplaceStep(StepDraw, "drawGeography",
			func(in Input) string { return in.DrawGeography },
			AirShareByDraw, Air),
		impact.MultiplierStep(StepCarpool, "carpoolIncentive",
			func(in Input) string { return in.CarpoolIncentive },
			CarpoolMultipliers, CarSolo, CarpoolDonors...),
	},
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithFactors replaces the emission factor table.
func WithFactors(t impact.FactorTable) Option {
	return func(e *Estimator) {
		e.factors = t
	}
}

// Estimator computes audience travel impact. It holds only immutable tables
// and is safe for concurrent use.
type Estimator struct {
	pipeline impact.Pipeline[Input]
	factors  impact.FactorTable
}

// New creates an Estimator with the default tables.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		pipeline: Pipeline,
		factors:  defaultFactors,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolve returns the adjusted, normalized mode split for in.
func (e *Estimator) Resolve(in Input) impact.Resolution {
	return e.pipeline.Resolve(in)
}

// Estimate computes the full audience result.
func (e *Estimator) Estimate(in Input) impact.Result {
	res := impact.NewResult(Facet, Unit)
	r := e.pipeline.Resolve(in)
	res.Distribution = r.Distribution
	res.BaselineProfile = r.Baseline
	if r.FellBack {
		res.Assume(fmt.Sprintf("venue location type not recognised; assumed %s", r.Baseline))
	}
	in = recognised(in)

	distance := impact.Positive(in.AverageTravelDistanceKm)
	if distance == 0 {
		distance = DefaultDistanceKm[r.Baseline]
		res.Assume(fmt.Sprintf("average travel distance not given; assumed %.0f km for a %s venue", distance, r.Baseline))
	}
	attendance := impact.Positive(in.ExpectedAttendance)
	if attendance == 0 {
		res.Assume("expected attendance not given; travel emissions reported as zero")
	}

	byMode := impact.AggregateByMode(r.Distribution, attendance, distance, e.factors)
	parts := make([]impact.Component, 0, len(Modes))
	for _, m := range Modes {
		parts = append(parts, impact.Component{Name: string(m), MassKg: byMode[m]})
	}
	res.SetMass(attendance, parts...)

	detail := DetailScore(in)
	res.DetailScore = detail
	res.ConfidenceLevel = ConfidenceBands.Classify(detail)
	access := AccessibilityBands.Classify(AccessibilityScore(in))
	res.Scores[ScoreAccessibility] = access

	res.Insights = impact.Generate(newView(in, r, byMode, distance, res, e.factors), rules)
	return res
}

// Explain returns the distribution after every pipeline stage.
func (e *Estimator) Explain(in Input) []impact.TraceEntry {
	return e.pipeline.Trace(in)
}

// Describe lists the fields and adjustment order of the facet.
func (e *Estimator) Describe() impact.Catalogue {
	return impact.Catalogue{
		Facet:   Facet,
		Unit:    Unit,
		Primary: "venueLocationType",
		Modes:   Modes,
		Steps:   e.pipeline.StepNames(),
		Fields: []impact.FieldSpec{
			impact.Enum("venueLocationType", DefaultLocation, Baselines.Keys(locationOrder...)...),
			impact.Enum("transitAccessibility", "", TransitMultipliers.Values(transitOrder...)...),
			impact.Enum("parkingStrategy", "", ParkingMultipliers.Values(parkingOrder...)...),
			impact.Enum("shuttleService", "", ShuttlePoints.Values(shuttleOrder...)...),
			impact.Enum("drawGeography", "", AirShareByDraw.Values(drawOrder...)...),
			impact.Enum("carpoolIncentive", "", CarpoolMultipliers.Values(carpoolOrder...)...),
			impact.Enum("activeTravelInfrastructure", "", activeOrder...),
			impact.Number("expectedAttendance", "people"),
			impact.Number("averageTravelDistanceKm", "km"),
		},
	}
}
