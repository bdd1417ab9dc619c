package facet

import (
	"fmt"
	"slices"

	"github.com/okian/footprint/internal/domain/audience"
	"github.com/okian/footprint/internal/domain/crew"
	"github.com/okian/footprint/internal/domain/food"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/power"
	"github.com/okian/footprint/internal/domain/production"
)

// Registry maps facet names to estimators. It is read-only after
// construction and safe for concurrent use.
type Registry struct {
	facets map[string]Facet
	order  []string
}

// NewRegistry registers facets in the given order. A later facet with the
// same name replaces an earlier one.
func NewRegistry(facets ...Facet) *Registry {
	r := &Registry{facets: make(map[string]Facet, len(facets))}
	for _, f := range facets {
		key := impact.Key(f.Name())
		if _, ok := r.facets[key]; !ok {
			r.order = append(r.order, key)
		}
		r.facets[key] = f
	}
	return r
}

// Lookup finds a facet by name, ignoring case and separator spelling.
func (r *Registry) Lookup(name string) (Facet, error) {
	f, ok := r.facets[impact.Key(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFacet, name)
	}
	return f, nil
}

// Names lists the registered facets in registration order.
func (r *Registry) Names() []string { return slices.Clone(r.order) }

// Catalogue describes every registered facet.
func (r *Registry) Catalogue() []impact.Catalogue {
	out := make([]impact.Catalogue, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.facets[name].Describe())
	}
	return out
}

// Overrides maps facet name to emission factor overrides in the form
// accepted by impact.FactorTable.WithOverrides.
type Overrides map[string]map[string]float64

// Default builds the registry of the five built-in facets with optional
// factor overrides applied.
func Default(overrides Overrides) (*Registry, error) {
	known := []string{audience.Facet, crew.Facet, power.Facet, production.Facet, food.Facet}
	tables := make(map[string]impact.FactorTable, len(known))
	base := map[string]impact.FactorTable{
		audience.Facet:   audience.Factors(),
		crew.Facet:       crew.Factors(),
		power.Facet:      power.Factors(),
		production.Facet: production.Factors(),
		food.Facet:       food.Factors(),
	}
	for name, o := range overrides {
		key := impact.Key(name)
		t, ok := base[key]
		if !ok {
			return nil, fmt.Errorf("factor overrides: %w: %q", ErrUnknownFacet, name)
		}
		merged, err := t.WithOverrides(o)
		if err != nil {
			return nil, fmt.Errorf("factor overrides for %s: %w", key, err)
		}
		tables[key] = merged
	}
	for _, name := range known {
		if _, ok := tables[name]; !ok {
			tables[name] = base[name]
		}
	}

	return NewRegistry(
		Adapt[audience.Input](audience.Facet,
			audience.New(audience.WithFactors(tables[audience.Facet])),
			func(in *audience.Input, km float64) bool {
				if impact.GivenNumber(in.AverageTravelDistanceKm) {
					return false
				}
				in.AverageTravelDistanceKm = km
				return true
			}),
		Adapt[crew.Input](crew.Facet,
			crew.New(crew.WithFactors(tables[crew.Facet])),
			func(in *crew.Input, km float64) bool {
				if impact.GivenNumber(in.AverageTravelDistanceKm) {
					return false
				}
				in.AverageTravelDistanceKm = km
				return true
			}),
		Adapt[power.Input](power.Facet, power.New(power.WithFactors(tables[power.Facet])), nil),
		Adapt[production.Input](production.Facet, production.New(production.WithFactors(tables[production.Facet])), nil),
		Adapt[food.Input](food.Facet, food.New(food.WithFactors(tables[food.Facet])), nil),
	), nil
}
