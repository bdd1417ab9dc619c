// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/domain/facet"
	"github.com/okian/footprint/internal/domain/impact"
	"github.com/okian/footprint/internal/domain/model"
)

// maxBodyBytes bounds every request body.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers.
type Dependencies interface {
	Estimate(ctx context.Context, req service.EstimateRequest) (*model.Estimate, error)
	Facets() ([]impact.Catalogue, error)
	SubmitBatch(ctx context.Context, items []model.Item, idempotencyKey string) (service.BatchReceipt, error)
	GetBatch(ctx context.Context, id string) (*model.Batch, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	estimatesHandler *EstimatesHandler
	facetsHandler    *FacetsHandler
	batchesHandler   *BatchesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		estimatesHandler: NewEstimatesHandler(deps),
		facetsHandler:    NewFacetsHandler(deps),
		batchesHandler:   NewBatchesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /v1/facets", MetricsMiddleware(s.facetsHandler.HandleGetFacets, "facets"))
	mux.HandleFunc("POST /v1/estimates/{facet}", MetricsMiddleware(s.estimatesHandler.HandlePostEstimate, "estimates"))
	mux.HandleFunc("POST /v1/batches", MetricsMiddleware(s.batchesHandler.HandlePostBatch, "batches"))
	mux.HandleFunc("GET /v1/batches/{id}", MetricsMiddleware(s.batchesHandler.HandleGetBatch, "batch"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// classify maps an upstream error onto its API kind.
func classify(err error) error {
	var tooBig *http.MaxBytesError
	switch {
	case errors.As(err, &tooBig), errors.Is(err, service.ErrBatchTooLarge):
		return ErrTooLarge
	case errors.Is(err, facet.ErrUnknownFacet), errors.Is(err, service.ErrBatchNotFound):
		return ErrNotFound
	case errors.Is(err, facet.ErrDecodeInput), errors.Is(err, service.ErrEmptyBatch):
		return ErrBadRequest
	case errors.Is(err, service.ErrBackpressure):
		return ErrBackpressure
	case errors.Is(err, service.ErrNotStarted):
		return ErrUnavailable
	default:
		return ErrInternal
	}
}

// writeFailure writes err with the status and code of its kind.
func writeFailure(w http.ResponseWriter, op string, err error) {
	var (
		kind   error
		apiErr *Error
	)
	if errors.As(err, &apiErr) && apiErr.Kind != nil {
		kind = apiErr.Kind
	} else {
		kind = classify(err)
		err = WrapKind(op, kind, err)
	}

	switch kind {
	case ErrBadRequest:
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case ErrNotFound:
		writeError(w, http.StatusNotFound, "not_found", err)
	case ErrTooLarge:
		writeError(w, http.StatusRequestEntityTooLarge, "too_large", err)
	case ErrBackpressure:
		writeError(w, http.StatusTooManyRequests, "backpressure", err)
	case ErrUnavailable:
		writeError(w, http.StatusServiceUnavailable, "unavailable", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
