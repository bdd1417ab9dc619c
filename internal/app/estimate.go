package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/okian/footprint/internal/domain/equivalency"
	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/internal/domain/model"
	"github.com/okian/footprint/internal/routing"
	"github.com/okian/footprint/pkg/logger"
	"github.com/okian/footprint/pkg/metrics"
)

// Route lookup outcomes.
const (
	routeResolved = "resolved"
	routeUnknown  = "unknown"
	routeIgnored  = "ignored"
)

// EstimateRequest is one facet estimate to compute.
type EstimateRequest struct {
	Facet  string
	Label  string
	Decode facet.Decoder
	// Origin and Destination name a route whose distance fills in the
	// average travel distance of facets that travel.
	Origin      string
	Destination string
	TravelMode  string
	Explain     bool
}

// Estimate computes one facet estimate.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*model.Estimate, error) {
	reg, err := s.components()
	if err != nil {
		return nil, err
	}
	start := time.Now()

	f, err := reg.Lookup(req.Facet)
	if err != nil {
		metrics.RecordEstimateError("unknown_facet")
		return nil, err
	}

	route, hasRoute := s.resolveRoute(ctx, f, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := f.Estimate(facet.Request{
		Decode:     req.Decode,
		DistanceKm: route.DistanceKm,
		Explain:    req.Explain,
	})
	if err != nil {
		metrics.RecordEstimateError("decode")
		return nil, err
	}

	est := &model.Estimate{
		ID:          uuid.NewString(),
		Facet:       f.Name(),
		Label:       req.Label,
		Result:      out.Result,
		Equivalency: equivalency.Calculate(out.Result.EstimatedMassKg),
		Trace:       out.Trace,
	}
	if hasRoute && out.RouteApplied {
		r := route
		est.Route = &r
	}
	s.estimates.Add(1)

	latency := float64(time.Since(start).Microseconds()) / 1000
	metrics.RecordEstimate(est.Facet, out.Result.ConfidenceLevel, len(out.Result.Assumptions) > 0,
		latency, out.Result.EstimatedMassKg)
	if len(out.Result.Assumptions) > 0 {
		s.logger.Debug(ctx, "estimate used defaults",
			logger.String("facet", est.Facet),
			logger.String("id", est.ID),
			logger.Any("assumptions", out.Result.Assumptions),
		)
	}
	return est, nil
}

// resolveRoute looks up the route distance of a request. An unknown route
// leaves the facet default in place.
func (s *Service) resolveRoute(ctx context.Context, f facet.Facet, req EstimateRequest) (routing.Route, bool) {
	if req.Origin == "" && req.Destination == "" {
		return routing.Route{}, false
	}
	if !f.Travels() {
		metrics.RecordRouteLookup(routeIgnored)
		return routing.Route{}, false
	}
	route, err := s.resolver.Resolve(ctx, req.Origin, req.Destination, req.TravelMode)
	if err != nil {
		if errors.Is(err, routing.ErrRouteUnknown) || errors.Is(err, routing.ErrInvalidRoute) {
			metrics.RecordRouteLookup(routeUnknown)
			s.logger.Debug(ctx, "route not found; using facet default",
				logger.String("origin", req.Origin),
				logger.String("destination", req.Destination),
				logger.Error(err),
			)
		}
		return routing.Route{}, false
	}
	metrics.RecordRouteLookup(routeResolved)
	return route, true
}

// EstimateItem computes one batch item. It implements worker.Estimator.
func (s *Service) EstimateItem(ctx context.Context, item model.Item) (*model.Estimate, error) {
	return s.Estimate(ctx, EstimateRequest{
		Facet:       item.Facet,
		Label:       item.Label,
		Decode:      facet.JSON(item.Input),
		Origin:      item.Origin,
		Destination: item.Destination,
		TravelMode:  item.TravelMode,
	})
}
