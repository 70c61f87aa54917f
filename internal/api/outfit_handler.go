package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// OutfitHandler handles outfit HTTP requests.
type OutfitHandler struct {
	outfits service.OutfitService
}

// NewOutfitHandler creates a new OutfitHandler.
func NewOutfitHandler(outfits service.OutfitService) *OutfitHandler {
	return &OutfitHandler{outfits: outfits}
}

// List handles GET /api/outfits requests.
func (h *OutfitHandler) List(w http.ResponseWriter, r *http.Request) {
	outfits, err := h.outfits.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, outfits)
}

// Get handles GET /api/outfits/{id} requests.
func (h *OutfitHandler) Get(w http.ResponseWriter, r *http.Request) {
	outfit, err := h.outfits.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, outfit)
}

// Create handles POST /api/outfits requests.
func (h *OutfitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data service.OutfitData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	outfit, err := h.outfits.Create(r.Context(), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, outfit)
}

// Update handles PATCH /api/outfits/{id} requests.
func (h *OutfitHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.OutfitUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	outfit, err := h.outfits.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, outfit)
}

// Delete handles DELETE /api/outfits/{id} requests.
func (h *OutfitHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.outfits.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
