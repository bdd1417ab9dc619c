// Package production estimates the embodied footprint of staging and set
// builds, their freight and printed collateral.
package production

import (
	"fmt"
	"slices"

	"github.com/okian/footprint/internal/domain/impact"
)

const (
	// Facet is the registry name of this estimator.
	Facet = "production"
	// Unit is what PerUnitMassKg is expressed per.
	Unit = "sqm"
)

// Component names.
const (
	ComponentMaterials = "materials"
	ComponentFreight   = "freight"
	ComponentPrint     = "print"
)

// Input describes the production build. Every field is optional.
type Input struct {
	SetDesignApproach string  `json:"setDesignApproach,omitempty" yaml:"setDesignApproach,omitempty"`
	PrimaryMaterial   string  `json:"primaryMaterial,omitempty" yaml:"primaryMaterial,omitempty"`
	EndOfLifePlan     string  `json:"endOfLifePlan,omitempty" yaml:"endOfLifePlan,omitempty"`
	PrintedMaterials  string  `json:"printedMaterials,omitempty" yaml:"printedMaterials,omitempty"`
	StageAreaSqm      float64 `json:"stageAreaSqm,omitempty" yaml:"stageAreaSqm,omitempty"`
	FreightDistanceKm float64 `json:"freightDistanceKm,omitempty" yaml:"freightDistanceKm,omitempty"`
	FreightTonnes     float64 `json:"freightTonnes,omitempty" yaml:"freightTonnes,omitempty"`
}

// StepPrimary is the only adjustment of the material mix.
const StepPrimary = "primary-material"

// primaryMaterial doubles the named material and takes the gain evenly from
// the other new materials. Reused stock is never a donor.
var primaryMaterial = impact.Step[Input]{
	Name:  StepPrimary,
	Field: "primaryMaterial",
	Apply: func(d impact.Distribution, in Input) impact.Distribution {
		target := impact.Mode(impact.Key(in.PrimaryMaterial))
		if !slices.Contains(newMaterials, target) {
			return d
		}
		donors := make([]impact.Donor, 0, len(newMaterials)-1)
		for _, m := range newMaterials {
			if m != target {
				donors = append(donors, impact.Donor{Mode: m, Weight: 1})
			}
		}
		return impact.Redistribute(d, target, PrimaryMaterialMultiplier, donors)
	},
}

// Pipeline is the production material-mix pipeline.
var Pipeline = impact.Pipeline[Input]{
	Baseline: Baselines,
	Driver:   func(in Input) string { return in.SetDesignApproach },
	Steps:    []impact.Step[Input]{primaryMaterial},
}

var endOfLife = impact.MultiplierChain[Input]{
	{
		Name:    "end-of-life",
		Field:   "endOfLifePlan",
		Value:   func(in Input) string { return in.EndOfLifePlan },
		Table:   EndOfLifeMultipliers,
		Default: EndOfLifeMultipliers[DefaultEndOfLife],
	},
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithFactors replaces the material emission factor table.
func WithFactors(t impact.FactorTable) Option {
	return func(e *Estimator) {
		e.factors = t
	}
}

// Estimator computes production impact. Safe for concurrent use.
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

// FreightKg is distance x tonnes x the road freight factor.
func FreightKg(in Input) float64 {
	return impact.Positive(in.FreightDistanceKm) * impact.Positive(in.FreightTonnes) * FreightKgPerTonneKm
}

func (e *Estimator) materialsKg(d impact.Distribution, in Input) float64 {
	return endOfLife.Apply(impact.PerUnit(d, e.factors)*impact.Positive(in.StageAreaSqm), in)
}

// Estimate computes the production result: materials, freight and print.
func (e *Estimator) Estimate(in Input) impact.Result {
	res := impact.NewResult(Facet, Unit)
	r := e.pipeline.Resolve(in)
	res.Distribution = r.Distribution
	res.BaselineProfile = r.Baseline
	if r.FellBack {
		res.Assume(fmt.Sprintf("set design approach not recognised; assumed %s", r.Baseline))
	}
	in = recognised(in)

	area := impact.Positive(in.StageAreaSqm)
	if area == 0 {
		res.Assume("stage area not given; material emissions reported as zero")
	}
	if _, ok := EndOfLifeMultipliers.Lookup(in.EndOfLifePlan); !ok {
		res.Assume(fmt.Sprintf("end-of-life plan not given; assumed %s", DefaultEndOfLife))
	}
	printKg, _ := PrintedKg.Lookup(in.PrintedMaterials)

	materials := e.materialsKg(r.Distribution, in)
	res.SetMass(area,
		impact.Component{Name: ComponentMaterials, MassKg: materials},
		impact.Component{Name: ComponentFreight, MassKg: FreightKg(in)},
		impact.Component{Name: ComponentPrint, MassKg: printKg},
	)

	detail := DetailScore(in)
	res.DetailScore = detail
	res.ConfidenceLevel = ConfidenceBands.Classify(detail)
	res.Scores[ScoreCircularity] = CircularityBands.Classify(CircularityScore(in))

	rental := in
	rental.SetDesignApproach = RentalReuse
	rental.PrimaryMaterial = ""

	res.Insights = impact.Generate(view{
		in:          in,
		approach:    r.Baseline,
		dist:        r.Distribution,
		materialsKg: res.Components[ComponentMaterials],
		freightKg:   res.Components[ComponentFreight],
		printKg:     res.Components[ComponentPrint],
		totalKg:     res.EstimatedMassKg,
		rentalKg:    e.materialsKg(e.pipeline.Resolve(rental).Distribution, rental),
		detail:      detail,
	}, rules)
	return res
}

// Explain returns the material mix after every pipeline stage.
func (e *Estimator) Explain(in Input) []impact.TraceEntry {
	return e.pipeline.Trace(in)
}

// Describe lists the fields and adjustment order of the facet.
func (e *Estimator) Describe() impact.Catalogue {
	return impact.Catalogue{
		Facet:   Facet,
		Unit:    Unit,
		Primary: "setDesignApproach",
		Modes:   Modes,
		Steps:   e.pipeline.StepNames(),
		Fields: []impact.FieldSpec{
			impact.Enum("setDesignApproach", DefaultApproach, Baselines.Keys(approachOrder...)...),
			impact.Enum("primaryMaterial", "", materialOrder...),
			impact.Enum("endOfLifePlan", DefaultEndOfLife, EndOfLifeMultipliers.Values(endOfLifeOrder...)...),
			impact.Enum("printedMaterials", "none", PrintedKg.Values(printOrder...)...),
			impact.Number("stageAreaSqm", "sqm"),
			impact.Number("freightDistanceKm", "km"),
			impact.Number("freightTonnes", "t"),
		},
	}
}
