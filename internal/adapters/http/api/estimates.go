package api

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strconv"

	"gopkg.in/yaml.v3"

	service "github.com/okian/footprint/internal/app"
	"github.com/okian/footprint/internal/domain/facet"
)

// routeHint is read from the same body as the facet input.
type routeHint struct {
	Label       string `json:"label" yaml:"label"`
	Origin      string `json:"origin" yaml:"origin"`
	Destination string `json:"destination" yaml:"destination"`
	TravelMode  string `json:"travelMode" yaml:"travelMode"`
}

// EstimatesHandler computes single estimates.
type EstimatesHandler struct {
	deps Dependencies
}

// NewEstimatesHandler creates a new estimates handler.
func NewEstimatesHandler(deps Dependencies) *EstimatesHandler {
	return &EstimatesHandler{deps: deps}
}

// HandlePostEstimate handles POST /v1/estimates/{facet}. The body is the
// facet input as JSON, or YAML when the content type says so. Unknown fields
// are ignored.
func (h *EstimatesHandler) HandlePostEstimate(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_estimate"

	explain := false
	if v := r.URL.Query().Get("explain"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
			return
		}
		explain = b
	}

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeFailure(w, op, err)
		return
	}

	var (
		hint   routeHint
		decode facet.Decoder
	)
	if isYAML(r.Header.Get("Content-Type")) {
		decode = facet.YAML(raw)
		err = yaml.Unmarshal(raw, &hint)
	} else {
		decode = facet.JSON(raw)
		if len(raw) > 0 {
			err = json.Unmarshal(raw, &hint)
		}
	}
	if err != nil {
		writeFailure(w, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	est, err := h.deps.Estimate(r.Context(), service.EstimateRequest{
		Facet:       r.PathValue("facet"),
		Label:       hint.Label,
		Decode:      decode,
		Origin:      hint.Origin,
		Destination: hint.Destination,
		TravelMode:  hint.TravelMode,
		Explain:     explain,
	})
	if err != nil {
		writeFailure(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

func isYAML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	switch mt {
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return true
	}
	return false
}
