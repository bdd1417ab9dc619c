package impact

import "fmt"

// BaselineTable holds the starting profiles of a facet keyed by its primary
// categorical driver.
type BaselineTable struct {
	// Modes is the closed mode set, in display order.
	Modes []Mode
	// Profiles maps a canonical driver value to its starting shares.
	Profiles map[string]map[Mode]float64
	// Default is the driver value used when the input is missing or unknown.
	Default string
}

// Select returns the baseline for driver together with the key actually
// used. fellBack is true when driver was empty or unrecognised.
func (t BaselineTable) Select(driver string) (d Distribution, key string, fellBack bool) {
	key = Key(driver)
	profile, ok := t.Profiles[key]
	if !ok {
		key, fellBack = t.Default, true
		profile = t.Profiles[t.Default]
	}
	return NewDistribution(t.Modes, profile), key, fellBack
}

// Has reports whether driver selects a profile of its own.
func (t BaselineTable) Has(driver string) bool {
	_, ok := t.Profiles[Key(driver)]
	return ok
}

// Keys lists the known driver values in the order given.
func (t BaselineTable) Keys(order ...string) []string {
	out := make([]string, 0, len(order))
	for _, k := range order {
		if _, ok := t.Profiles[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// Validate checks that the default exists and every profile is non-empty.
func (t BaselineTable) Validate() error {
	if _, ok := t.Profiles[t.Default]; !ok {
		return fmt.Errorf("%w: default baseline %q missing", ErrInvalidTable, t.Default)
	}
	for key, p := range t.Profiles {
		if NewDistribution(t.Modes, p).IsZero() {
			return fmt.Errorf("%w: baseline %q is all zero", ErrInvalidTable, key)
		}
	}
	return nil
}

// Pipeline is the shared baseline -> adjust -> normalize skeleton. A facet is
// a Pipeline value plus its factor and rule tables, not new control flow.
type Pipeline[In any] struct {
	Baseline BaselineTable
	// Driver reads the primary categorical field from the input.
	Driver func(In) string
	// Steps run in order; each reads the previous step's output.
	Steps []Step[In]
}

// Resolution is the outcome of running a pipeline.
type Resolution struct {
	Distribution Distribution
	Baseline     string
	FellBack     bool
}

// Resolve runs the baseline selector, every step in order and the normalizer.
func (p Pipeline[In]) Resolve(in In) Resolution {
	d, key, fellBack := p.Baseline.Select(p.Driver(in))
	for _, s := range p.Steps {
		d = s.Apply(d, in)
	}
	return Resolution{Distribution: Normalize(d), Baseline: key, FellBack: fellBack}
}

// TraceEntry records the distribution after one stage of a pipeline run.
type TraceEntry struct {
	Stage        string       `json:"stage"`
	Field        string       `json:"field,omitempty"`
	Distribution Distribution `json:"distribution"`
}

// Trace runs the pipeline and records every intermediate distribution,
// starting with the baseline and ending with the normalized result.
func (p Pipeline[In]) Trace(in In) []TraceEntry {
	d, key, _ := p.Baseline.Select(p.Driver(in))
	out := make([]TraceEntry, 0, len(p.Steps)+2)
	out = append(out, TraceEntry{Stage: "baseline:" + key, Distribution: d})
	for _, s := range p.Steps {
		d = s.Apply(d, in)
		out = append(out, TraceEntry{Stage: s.Name, Field: s.Field, Distribution: d})
	}
	return append(out, TraceEntry{Stage: "normalize", Distribution: Normalize(d)})
}

// StepNames returns the step names in execution order.
func (p Pipeline[In]) StepNames() []string {
	names := make([]string, len(p.Steps))
	for i, s := range p.Steps {
		names[i] = s.Name
	}
	return names
}
