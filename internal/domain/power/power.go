// Package power estimates the footprint of an event's power supply from the
// energy mix, the daily load and generator practice.
package power

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/impact"
)

const (
	// Facet is the registry name of this estimator.
	Facet = "power"
	// Unit is what PerUnitMassKg is expressed per.
	Unit = "kWh"
)

// Input describes the power side of an event. Every field is optional.
type Input struct {
	PowerSource     string  `json:"powerSource,omitempty" yaml:"powerSource,omitempty"`
	SolarSupplement string  `json:"solarSupplement,omitempty" yaml:"solarSupplement,omitempty"`
	GeneratorSizing string  `json:"generatorSizing,omitempty" yaml:"generatorSizing,omitempty"`
	LoadManagement  string  `json:"loadManagement,omitempty" yaml:"loadManagement,omitempty"`
	DailyLoadKWh    float64 `json:"dailyLoadKWh,omitempty" yaml:"dailyLoadKWh,omitempty"`
	EventDays       float64 `json:"eventDays,omitempty" yaml:"eventDays,omitempty"`
}

// StepSolar is the only adjustment of the energy mix.
const StepSolar = "solar-supplement"

// Pipeline is the power energy-mix pipeline.
var Pipeline = impact.Pipeline[Input]{
	Baseline: Baselines,
	Driver:   func(in Input) string { return in.PowerSource },
	Steps: []impact.Step[Input]{
		solarSupplement,
	},
}

// solarSupplement shifts its points over the donors the source actually
// uses, so a grid-only supply gives up the whole supplement to solar.
var solarSupplement = impact.Step[Input]{
	Name:  StepSolar,
	Field: "solarSupplement",
	Apply: func(d impact.Distribution, in Input) impact.Distribution {
		p, ok := SolarPoints.Lookup(in.SolarSupplement)
		if !ok || p == 0 {
			return d
		}
		return impact.Shift(d, BatterySolar, p, impact.HeldDonors(d, SolarDonors))
	},
}

var (
	sizing = impact.Multiplier[Input]{
		Name:    "generator-sizing",
		Field:   "generatorSizing",
		Value:   func(in Input) string { return in.GeneratorSizing },
		Table:   SizingMultipliers,
		Default: SizingMultipliers[DefaultSizing],
	}
	drawChain = impact.MultiplierChain[Input]{
		{
			Name:    "load-management",
			Field:   "loadManagement",
			Value:   func(in Input) string { return in.LoadManagement },
			Table:   LoadMultipliers,
			Default: 1,
		},
	}
)

// Option configures an Estimator.
type Option func(*Estimator)

// WithFactors replaces the emission factor table.
func WithFactors(t impact.FactorTable) Option {
	return func(e *Estimator) {
		e.factors = t
	}
}

// Estimator computes power impact. Safe for concurrent use.
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

// EnergyKWh is the daily load times the number of event days (default one).
func EnergyKWh(in Input) float64 {
	days := impact.Positive(in.EventDays)
	if days == 0 {
		days = 1
	}
	return impact.Positive(in.DailyLoadKWh) * days
}

// Estimate computes the power result, one component per supply mode.
func (e *Estimator) Estimate(in Input) impact.Result {
	res := impact.NewResult(Facet, Unit)
	r := e.pipeline.Resolve(in)
	res.Distribution = r.Distribution
	res.BaselineProfile = r.Baseline
	if r.FellBack {
		res.Assume(fmt.Sprintf("power source not recognised; assumed %s", r.Baseline))
	}
	in = recognised(in)

	energy := EnergyKWh(in)
	if energy == 0 {
		res.Assume("daily load not given; power emissions reported as zero")
	}
	if !impact.GivenNumber(in.EventDays) {
		res.Assume("event days not given; assumed 1")
	}
	sizeFactor, known := sizing.Resolve(in)
	if !known && generatorShare(r.Distribution) > 0 {
		res.Assume(fmt.Sprintf("generator sizing not given; assumed %s (x%.1f fuel burn)", DefaultSizing, sizeFactor))
	}

	drawn := drawChain.Apply(energy, in)
	byMode := impact.AggregateByMode(r.Distribution, drawn, 1, e.factors)
	parts := make([]impact.Component, 0, len(Modes))
	for _, m := range Modes {
		kg := byMode[m]
		if generatorModes[m] {
			kg *= sizeFactor
		}
		byMode[m] = kg
		parts = append(parts, impact.Component{Name: string(m), MassKg: kg})
	}
	res.SetMass(energy, parts...)

	detail := DetailScore(in)
	res.DetailScore = detail
	res.ConfidenceLevel = ConfidenceBands.Classify(detail)
	res.Scores[ScoreEfficiency] = EfficiencyBands.Classify(EfficiencyScore(in))

	res.Insights = impact.Generate(view{
		in:       in,
		source:   r.Baseline,
		dist:     r.Distribution,
		byModeKg: byMode,
		totalKg:  res.EstimatedMassKg,
		energy:   energy,
		sizing:   sizeFactor,
		factors:  e.factors,
		detail:   detail,
	}, rules)
	return res
}

func generatorShare(d impact.Distribution) float64 {
	var s float64
	for m := range generatorModes {
		s += d.Share(m)
	}
	return s
}

// Explain returns the energy mix after every pipeline stage.
func (e *Estimator) Explain(in Input) []impact.TraceEntry {
	return e.pipeline.Trace(in)
}

// Describe lists the fields and adjustment order of the facet.
func (e *Estimator) Describe() impact.Catalogue {
	return impact.Catalogue{
		Facet:   Facet,
		Unit:    Unit,
		Primary: "powerSource",
		Modes:   Modes,
		Steps:   e.pipeline.StepNames(),
		Fields: []impact.FieldSpec{
			impact.Enum("powerSource", DefaultSource, Baselines.Keys(sourceOrder...)...),
			impact.Enum("solarSupplement", "", SolarPoints.Values(solarOrder...)...),
			impact.Enum("generatorSizing", DefaultSizing, SizingMultipliers.Values(sizingOrder...)...),
			impact.Enum("loadManagement", "none", LoadMultipliers.Values(loadOrder...)...),
			impact.Number("dailyLoadKWh", "kWh"),
			impact.Number("eventDays", "days"),
		},
	}
}
