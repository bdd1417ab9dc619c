// Package crew estimates the travel and accommodation footprint of the
// production crew.
package crew

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/impact"
)

const (
	// Facet is the registry name of this estimator.
	Facet = "crew"
	// Unit is what PerUnitMassKg is expressed per.
	Unit = "crew member"
)

// Component names.
const (
	ComponentTravel        = "travel"
	ComponentAccommodation = "accommodation"
)

// Input describes the crew side of an event. Every field is optional.
type Input struct {
	StaffingModel           string  `json:"staffingModel,omitempty" yaml:"staffingModel,omitempty"`
	AccommodationStrategy   string  `json:"accommodationStrategy,omitempty" yaml:"accommodationStrategy,omitempty"`
	TravelPolicy            string  `json:"travelPolicy,omitempty" yaml:"travelPolicy,omitempty"`
	TotalCrewSize           float64 `json:"totalCrewSize,omitempty" yaml:"totalCrewSize,omitempty"`
	BuildDays               float64 `json:"buildDays,omitempty" yaml:"buildDays,omitempty"`
	ShowDays                float64 `json:"showDays,omitempty" yaml:"showDays,omitempty"`
	StrikeDays              float64 `json:"strikeDays,omitempty" yaml:"strikeDays,omitempty"`
	AverageTravelDistanceKm float64 `json:"averageTravelDistanceKm,omitempty" yaml:"averageTravelDistanceKm,omitempty"`
}

// Step names.
const (
	StepAccommodation = "accommodation-strategy"
	StepPolicy        = "travel-policy"
)

// Pipeline is the crew travel pipeline.
var Pipeline = impact.Pipeline[Input]{
	Baseline: Baselines,
	Driver:   func(in Input) string { return in.StaffingModel },
	Steps: []impact.Step[Input]{
		impact.ReplaceStep(StepAccommodation, "accommodationStrategy",
			func(in Input) string { return in.AccommodationStrategy },
			CoachShareByAccommodation, Coach),
		impact.MultiplierStep(StepPolicy, "travelPolicy",
			func(in Input) string { return in.TravelPolicy },
			PolicyMultipliers, Air, PolicyDonors...),
	},
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithFactors replaces the travel emission factor table.
func WithFactors(t impact.FactorTable) Option {
	return func(e *Estimator) {
		e.factors = t
	}
}

// Estimator computes crew impact. Safe for concurrent use.
type Estimator struct {
	pipeline impact.Pipeline[Input]
	factors  impact.FactorTable
}

// New creates an Estimator with the default tables.
func New(opts ...Option) *Estimator {
	e := &Estimator{pipeline: Pipeline, factors: defaultFactors}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Nights returns build + show + strike days. A missing show day count
// defaults to one when build or strike days are given; with no day counts at
// all there are no nights.
func Nights(in Input) float64 {
	build, strike := impact.Positive(in.BuildDays), impact.Positive(in.StrikeDays)
	show := impact.Positive(in.ShowDays)
	if show == 0 && build+strike > 0 {
		show = 1
	}
	return build + show + strike
}

func travelDistance(in Input, staffing string) float64 {
	if d := impact.Positive(in.AverageTravelDistanceKm); d > 0 {
		return d
	}
	return DefaultDistanceKm[staffing]
}

func (e *Estimator) travelKg(in Input, staffing string, crew float64) float64 {
	d := e.pipeline.Resolve(in).Distribution
	return impact.Aggregate(d, crew, travelDistance(in, staffing), e.factors)
}

// Estimate computes the crew result. Travel and accommodation are reported as
// separate components that add up to the total.
func (e *Estimator) Estimate(in Input) impact.Result {
	res := impact.NewResult(Facet, Unit)
	r := e.pipeline.Resolve(in)
	res.Distribution = r.Distribution
	res.BaselineProfile = r.Baseline
	if r.FellBack {
		res.Assume(fmt.Sprintf("staffing model not recognised; assumed %s", r.Baseline))
	}
	in = recognised(in)

	crew := impact.Positive(in.TotalCrewSize)
	if crew == 0 {
		res.Assume("crew size not given; crew emissions reported as zero")
	}
	if !impact.GivenNumber(in.AverageTravelDistanceKm) {
		res.Assume(fmt.Sprintf("average travel distance not given; assumed %.0f km for %s staffing",
			DefaultDistanceKm[r.Baseline], r.Baseline))
	}
	switch {
	case impact.GivenNumber(in.ShowDays):
	case impact.GivenNumber(in.BuildDays) || impact.GivenNumber(in.StrikeDays):
		res.Assume("show days not given; assumed 1")
	default:
		res.Assume("no day counts given; accommodation reported as zero")
	}

	accommodation := impact.Key(in.AccommodationStrategy)
	perNight, ok := NightFactors.Lookup(accommodation)
	if !ok {
		accommodation = DefaultAccommodation
		perNight, _ = NightFactors.Lookup(accommodation)
		res.Assume(fmt.Sprintf("accommodation strategy not given; assumed %s", accommodation))
	}
	resident, _ := ResidentShare.Lookup(r.Baseline)

	distance := travelDistance(in, r.Baseline)
	travelKg := impact.Aggregate(r.Distribution, crew, distance, e.factors)
	nights := Nights(in)
	accommodationKg := crew * nights * perNight * resident

	res.SetMass(crew,
		impact.Component{Name: ComponentTravel, MassKg: travelKg},
		impact.Component{Name: ComponentAccommodation, MassKg: accommodationKg},
	)

	detail := DetailScore(in)
	res.DetailScore = detail
	res.ConfidenceLevel = ConfidenceBands.Classify(detail)
	res.Scores[ScoreLogistics] = LogisticsBands.Classify(LogisticsScore(in))

	grounded := in
	grounded.TravelPolicy = "ground-only"
	groundKg := e.travelKg(grounded, r.Baseline, crew)

	res.Insights = impact.Generate(view{
		in:              in,
		staffing:        r.Baseline,
		accommodation:   accommodation,
		dist:            r.Distribution,
		travelKg:        res.Components[ComponentTravel],
		accommodationKg: res.Components[ComponentAccommodation],
		totalKg:         res.EstimatedMassKg,
		groundOnlyKg:    groundKg,
		crew:            crew,
		nights:          nights,
		distanceKm:      distance,
		detail:          detail,
	}, rules)
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
		Primary: "staffingModel",
		Modes:   Modes,
		Steps:   e.pipeline.StepNames(),
		Fields: []impact.FieldSpec{
			impact.Enum("staffingModel", DefaultStaffing, Baselines.Keys(staffingOrder...)...),
			impact.Enum("accommodationStrategy", DefaultAccommodation, NightFactors.Values(accommodationOrder...)...),
			impact.Enum("travelPolicy", "", PolicyMultipliers.Values(policyOrder...)...),
			impact.Number("totalCrewSize", "people"),
			impact.Number("buildDays", "days"),
			impact.Number("showDays", "days"),
			impact.Number("strikeDays", "days"),
			impact.Number("averageTravelDistanceKm", "km"),
		},
	}
}
