package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/footprint/internal/domain/model"
)

// IdempotencyHeader deduplicates batch submissions.
const IdempotencyHeader = "Idempotency-Key"

// batchRequest mirrors the OpenAPI schema for POST /v1/batches.
type batchRequest struct {
	Items []model.Item `json:"items"`
}

// BatchesHandler submits and reads asynchronous batches.
type BatchesHandler struct {
	deps Dependencies
}

// NewBatchesHandler creates a new batches handler.
func NewBatchesHandler(deps Dependencies) *BatchesHandler {
	return &BatchesHandler{deps: deps}
}

// HandlePostBatch handles POST /v1/batches requests.
func (h *BatchesHandler) HandlePostBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_batch"
	var req batchRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeFailure(w, op, WrapKind(op, ErrTooLarge, err))
			return
		}
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	for i, item := range req.Items {
		if strings.TrimSpace(item.Facet) == "" {
			writeFailure(w, op, WrapKind(op, ErrBadRequest, fmt.Errorf("item %d: missing facet", i)))
			return
		}
	}

	key := strings.TrimSpace(r.Header.Get(IdempotencyHeader))
	receipt, err := h.deps.SubmitBatch(r.Context(), req.Items, key)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusAccepted, receipt)
}

// HandleGetBatch handles GET /v1/batches/{id} requests.
func (h *BatchesHandler) HandleGetBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_batch"
	id := r.PathValue("id")
	if id == "" {
		writeFailure(w, op, NewKind(op, ErrBadRequest))
		return
	}
	b, err := h.deps.GetBatch(r.Context(), id)
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}
