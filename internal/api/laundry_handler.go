package api

import (
	"context"
	"net/http"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// BatchRequest is the request body for the laundry batch endpoints.
type BatchRequest struct {
	ClothIDs []string `json:"clothIds" validate:"required,min=1"`
}

// LaundryHandler handles laundry batch HTTP requests.
type LaundryHandler struct {
	laundry service.LaundryService
}

// NewLaundryHandler creates a new LaundryHandler.
func NewLaundryHandler(laundry service.LaundryService) *LaundryHandler {
	return &LaundryHandler{laundry: laundry}
}

// Wash handles POST /api/laundry/wash requests.
func (h *LaundryHandler) Wash(w http.ResponseWriter, r *http.Request) {
	h.runBatch(w, r, h.laundry.WashClothes)
}

// Press handles POST /api/laundry/press requests.
func (h *LaundryHandler) Press(w http.ResponseWriter, r *http.Request) {
	h.runBatch(w, r, h.laundry.PressClothes)
}

// MarkDirty handles POST /api/laundry/dirty requests.
func (h *LaundryHandler) MarkDirty(w http.ResponseWriter, r *http.Request) {
	h.runBatch(w, r, h.laundry.MarkDirty)
}

// runBatch is the shared decode/validate/respond path for the three batch
// operations. A degraded batch (history append failures) still returns
// 200; the result body carries the failure detail.
func (h *LaundryHandler) runBatch(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, clothIDs []string) (*service.BatchResult, error),
) {
	var req BatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "At least one cloth ID is required")
		return
	}

	result, err := op(r.Context(), req.ClothIDs)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}
