// Package api - HTTP handlers for the pricing and rating engine
// Handlers only ingest input, call the engine, and serialize output.
// They never perform pricing logic.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"printcost/engine"
	"printcost/internal/errors"
	"printcost/shipping"
)

// Handler handles pricing and rating requests
type Handler struct {
	engine *engine.Engine
}

// NewHandler creates a handler over an engine
func NewHandler(e *engine.Engine) *Handler {
	return &Handler{engine: e}
}

// HandlePrice handles POST /price
func (h *Handler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req PriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), nil, http.StatusBadRequest)
		return
	}

	breakdown, err := h.engine.ComputePrice(req.PriceRequest)
	if err != nil {
		writeDomainError(w, requestID, err)
		return
	}

	writeJSON(w, PriceResponse{RequestID: requestID, Breakdown: breakdown}, http.StatusOK)
}

// HandleWeight handles POST /weight
func (h *Handler) HandleWeight(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req WeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), nil, http.StatusBadRequest)
		return
	}
	if len(req.Items) == 0 {
		writeError(w, requestID, "INVALID_REQUEST", "at least one line item is required", nil, http.StatusBadRequest)
		return
	}

	writeJSON(w, WeightResponse{
		RequestID:      requestID,
		TotalWeightLbs: h.engine.ComputeShippingWeight(req.Items),
	}, http.StatusOK)
}

// HandleRates handles POST /rates.
// Rate aggregation degrades gracefully: provider failures appear in the
// result metadata, so this endpoint only fails on malformed input.
func (h *Handler) HandleRates(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req RatesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, requestID, "INVALID_REQUEST", err.Error(), nil, http.StatusBadRequest)
		return
	}
	if req.Destination.State == "" {
		writeError(w, requestID, "INVALID_REQUEST", "destination state is required", nil, http.StatusBadRequest)
		return
	}

	var pkg shipping.Package
	switch {
	case req.Package != nil:
		pkg = *req.Package
	case len(req.Items) > 0:
		pkg = h.engine.PackageFor(req.Items)
	default:
		writeError(w, requestID, "INVALID_REQUEST", "either package or items is required", nil, http.StatusBadRequest)
		return
	}

	result := h.engine.GetShippingRates(r.Context(), pkg, req.Destination, req.ProviderIDs)
	writeJSON(w, RatesResponse{AggregationResult: result}, http.StatusOK)
}

// writeDomainError maps the error taxonomy onto HTTP statuses:
// configuration errors are the caller's to fix (400), missing catalog
// entities are 404, everything else is 500.
func writeDomainError(w http.ResponseWriter, requestID string, err error) {
	if e, ok := err.(*errors.Error); ok {
		status := http.StatusInternalServerError
		switch e.Type {
		case errors.TypeConfiguration:
			status = http.StatusBadRequest
		case errors.TypeNotFound:
			status = http.StatusNotFound
		}
		writeError(w, requestID, string(e.Type), e.Message, e.Context, status)
		return
	}
	writeError(w, requestID, string(errors.TypeInternal), err.Error(), nil, http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, body interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, requestID, code, message string, context map[string]interface{}, status int) {
	writeJSON(w, ErrorResponse{
		RequestID: requestID,
		Code:      code,
		Message:   message,
		Context:   context,
	}, status)
}
