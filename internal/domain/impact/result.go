package impact

import "math"

// Result is the per-call output of a facet estimator. It is built fresh on
// every call and owned by the caller.
type Result struct {
	Facet string `json:"facet"`
	// EstimatedMassKg is the total, rounded to whole kilograms.
	EstimatedMassKg float64 `json:"estimatedMassKg"`
	// PerUnitMassKg is EstimatedMassKg divided by Scale, zero when Scale is zero.
	PerUnitMassKg   float64            `json:"perUnitMassKg"`
	Unit            string             `json:"unit"`
	Scale           float64            `json:"scale"`
	ConfidenceLevel string             `json:"confidenceLevel"`
	DetailScore     int                `json:"detailScore"`
	Scores          map[string]string  `json:"scores"`
	BaselineProfile string             `json:"baselineProfile"`
	Distribution    Distribution       `json:"distribution"`
	Components      map[string]float64 `json:"components"`
	Assumptions     []string           `json:"assumptions"`
	Insights
}

// Component is one named contribution to a facet total.
type Component struct {
	Name   string
	MassKg float64
}

// NewResult returns a Result with every map and list initialised.
func NewResult(facet, unit string) Result {
	return Result{
		Facet:       facet,
		Unit:        unit,
		Scores:      map[string]string{},
		Components:  map[string]float64{},
		Assumptions: []string{},
		Insights:    EmptyInsights(),
	}
}

// SetMass rounds every component to whole kilograms and derives the total
// from the rounded parts, so the components always add up to the total.
func (r *Result) SetMass(scale float64, parts ...Component) {
	r.Scale = Positive(scale)
	var total float64
	for _, p := range parts {
		kg := math.Round(Positive(p.MassKg))
		r.Components[p.Name] = kg
		total += kg
	}
	r.EstimatedMassKg = total
	r.PerUnitMassKg = 0
	if r.Scale > 0 {
		r.PerUnitMassKg = total / r.Scale
	}
}

// Assume records a default the estimator filled in for the caller.
func (r *Result) Assume(note string) {
	r.Assumptions = append(r.Assumptions, note)
}
