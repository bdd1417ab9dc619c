package api

import (
	"net/http"
)

// FacetsHandler lists the facet catalogue.
type FacetsHandler struct {
	deps Dependencies
}

// NewFacetsHandler creates a new facets handler.
func NewFacetsHandler(deps Dependencies) *FacetsHandler {
	return &FacetsHandler{deps: deps}
}

// HandleGetFacets handles GET /v1/facets requests.
func (h *FacetsHandler) HandleGetFacets(w http.ResponseWriter, _ *http.Request) {
	const op = "api.get_facets"
	cats, err := h.deps.Facets()
	if err != nil {
		writeFailure(w, op, Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"facets": cats})
}
