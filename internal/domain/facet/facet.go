// Package facet exposes every estimator behind one name-keyed registry so
// transports can decode input without knowing the concrete input types.
package facet

import (
	"github.com/okian/footprint/internal/domain/impact"
)

// Request is one estimate to compute.
type Request struct {
	Decode Decoder
	// DistanceKm is a resolved route distance. It is used only by facets that
	// travel and only when the input gives no distance of its own.
	DistanceKm float64
	// Explain asks for the per-step distribution trace.
	Explain bool
}

// Estimation is the outcome of a Request.
type Estimation struct {
	Result impact.Result       `json:"result"`
	Trace  []impact.TraceEntry `json:"trace,omitempty"`
	// RouteApplied reports whether Request.DistanceKm reached the estimator.
	RouteApplied bool `json:"-"`
}

// Facet is a type-erased estimator.
type Facet interface {
	Name() string
	// Travels reports whether the facet consumes a route distance.
	Travels() bool
	Estimate(req Request) (Estimation, error)
	Describe() impact.Catalogue
}

// DistanceSetter fills a route distance into an input that lacks one and
// reports whether it did.
type DistanceSetter[In any] func(in *In, km float64) bool

type adapter[In any] struct {
	name        string
	est         impact.Estimator[In]
	setDistance DistanceSetter[In]
}

// Adapt wraps a typed estimator. setDistance may be nil for facets that do
// not travel.
func Adapt[In any](name string, est impact.Estimator[In], setDistance DistanceSetter[In]) Facet {
	return &adapter[In]{name: name, est: est, setDistance: setDistance}
}

func (a *adapter[In]) Name() string { return a.name }

func (a *adapter[In]) Travels() bool { return a.setDistance != nil }

func (a *adapter[In]) Estimate(req Request) (Estimation, error) {
	var in In
	if req.Decode != nil {
		if err := req.Decode(&in); err != nil {
			return Estimation{}, err
		}
	}
	var out Estimation
	if a.setDistance != nil && req.DistanceKm > 0 {
		out.RouteApplied = a.setDistance(&in, req.DistanceKm)
	}
	out.Result = a.est.Estimate(in)
	if req.Explain {
		out.Trace = a.est.Explain(in)
	}
	return out, nil
}

func (a *adapter[In]) Describe() impact.Catalogue { return a.est.Describe() }
