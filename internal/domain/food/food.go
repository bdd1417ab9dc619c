// Package food estimates the footprint of catering from the menu mix, how it
// is sourced and served, and the serveware used.
package food

import (
	"fmt"

	"github.com/okian/footprint/internal/domain/impact"
)

const (
	// Facet is the registry name of this estimator.
	Facet = "food"
	// Unit is what PerUnitMassKg is expressed per.
	Unit = "meal"
)

// Component names.
const (
	ComponentMeals     = "meals"
	ComponentServeware = "serveware"
)

// Input describes the food service of an event. Every field is optional.
type Input struct {
	MenuType      string  `json:"menuType,omitempty" yaml:"menuType,omitempty"`
	RedMeatPolicy string  `json:"redMeatPolicy,omitempty" yaml:"redMeatPolicy,omitempty"`
	Sourcing      string  `json:"sourcing,omitempty" yaml:"sourcing,omitempty"`
	ServiceModel  string  `json:"serviceModel,omitempty" yaml:"serviceModel,omitempty"`
	WasteStrategy string  `json:"wasteStrategy,omitempty" yaml:"wasteStrategy,omitempty"`
	ServewareType string  `json:"servewareType,omitempty" yaml:"servewareType,omitempty"`
	MealsServed   float64 `json:"mealsServed,omitempty" yaml:"mealsServed,omitempty"`
}

// StepRedMeat is the only adjustment of the menu mix.
const StepRedMeat = "red-meat-policy"

// Pipeline is the food menu-mix pipeline.
var Pipeline = impact.Pipeline[Input]{
	Baseline: Baselines,
	Driver:   func(in Input) string { return in.MenuType },
	Steps: []impact.Step[Input]{
		impact.MultiplierStep(StepRedMeat, "redMeatPolicy",
			func(in Input) string { return in.RedMeatPolicy },
			RedMeatMultipliers, RedMeat, RedMeatDonors...),
	},
}

// Chain multiplies the per-meal footprint by sourcing, service model and
// waste strategy. Missing values are neutral.
var Chain = impact.MultiplierChain[Input]{
	{Name: "sourcing", Field: "sourcing", Value: func(in Input) string { return in.Sourcing }, Table: SourcingMultipliers, Default: 1},
	{Name: "service-model", Field: "serviceModel", Value: func(in Input) string { return in.ServiceModel }, Table: ServiceMultipliers, Default: 1},
	{Name: "waste-strategy", Field: "wasteStrategy", Value: func(in Input) string { return in.WasteStrategy }, Table: WasteMultipliers, Default: 1},
}

var serveware = impact.Multiplier[Input]{
	Name:    "serveware",
	Field:   "servewareType",
	Value:   func(in Input) string { return in.ServewareType },
	Table:   ServewareKg,
	Default: ServewareKg[DefaultServeware],
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithFactors replaces the per-meal emission factor table.
func WithFactors(t impact.FactorTable) Option {
	return func(e *Estimator) {
		e.factors = t
	}
}

// Estimator computes food impact. Safe for concurrent use.
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

// Estimate computes the food result: meals and serveware.
func (e *Estimator) Estimate(in Input) impact.Result {
	res := impact.NewResult(Facet, Unit)
	r := e.pipeline.Resolve(in)
	res.Distribution = r.Distribution
	res.BaselineProfile = r.Baseline
	if r.FellBack {
		res.Assume(fmt.Sprintf("menu type not recognised; assumed %s", r.Baseline))
	}
	in = recognised(in)

	meals := impact.Positive(in.MealsServed)
	if meals == 0 {
		res.Assume("meals served not given; food emissions reported as zero")
	}
	perServe, known := serveware.Resolve(in)
	if !known {
		res.Assume(fmt.Sprintf("serveware not given; assumed %s", DefaultServeware))
	}

	perMeal := impact.PerUnit(r.Distribution, e.factors)
	byMode := impact.AggregateByMode(r.Distribution, Chain.Apply(meals, in), 1, e.factors)
	res.SetMass(meals,
		impact.Component{Name: ComponentMeals, MassKg: Chain.Apply(perMeal*meals, in)},
		impact.Component{Name: ComponentServeware, MassKg: perServe * meals},
	)

	detail := DetailScore(in)
	res.DetailScore = detail
	res.ConfidenceLevel = ConfidenceBands.Classify(detail)
	res.Scores[ScoreMenu] = MenuBands.Classify(MenuScore(in))

	res.Insights = impact.Generate(view{
		in:          in,
		menu:        r.Baseline,
		dist:        r.Distribution,
		byModeKg:    byMode,
		mealsKg:     res.Components[ComponentMeals],
		servewareKg: res.Components[ComponentServeware],
		totalKg:     res.EstimatedMassKg,
		meals:       meals,
		perServe:    perServe,
		factors:     e.factors,
		detail:      detail,
	}, rules)
	return res
}

// Explain returns the menu mix after every pipeline stage.
func (e *Estimator) Explain(in Input) []impact.TraceEntry {
	return e.pipeline.Trace(in)
}

// Describe lists the fields and adjustment order of the facet.
func (e *Estimator) Describe() impact.Catalogue {
	return impact.Catalogue{
		Facet:   Facet,
		Unit:    Unit,
		Primary: "menuType",
		Modes:   Modes,
		Steps:   e.pipeline.StepNames(),
		Fields: []impact.FieldSpec{
			impact.Enum("menuType", DefaultMenu, Baselines.Keys(menuOrder...)...),
			impact.Enum("redMeatPolicy", "none", RedMeatMultipliers.Values(redMeatOrder...)...),
			impact.Enum("sourcing", "mixed", SourcingMultipliers.Values(sourcingOrder...)...),
			impact.Enum("serviceModel", "plated", ServiceMultipliers.Values(serviceOrder...)...),
			impact.Enum("wasteStrategy", "none", WasteMultipliers.Values(wasteOrder...)...),
			impact.Enum("servewareType", DefaultServeware, ServewareKg.Values(servewareOrder...)...),
			impact.Number("mealsServed", "meals"),
		},
	}
}
