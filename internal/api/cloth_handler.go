package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// ClothHandler handles cloth HTTP requests.
type ClothHandler struct {
	clothes service.ClothService
	laundry service.LaundryService
}

// NewClothHandler creates a new ClothHandler.
func NewClothHandler(clothes service.ClothService, laundry service.LaundryService) *ClothHandler {
	return &ClothHandler{clothes: clothes, laundry: laundry}
}

// List handles GET /api/clothes requests.
func (h *ClothHandler) List(w http.ResponseWriter, r *http.Request) {
	clothes, err := h.clothes.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, clothes)
}

// Get handles GET /api/clothes/{id} requests.
func (h *ClothHandler) Get(w http.ResponseWriter, r *http.Request) {
	cloth, err := h.clothes.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cloth)
}

// Create handles POST /api/clothes requests.
func (h *ClothHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data service.ClothData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	cloth, err := h.clothes.Create(r.Context(), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, cloth)
}

// Update handles PATCH /api/clothes/{id} requests.
func (h *ClothHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.ClothUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	cloth, err := h.clothes.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cloth)
}

// Delete handles DELETE /api/clothes/{id} requests.
func (h *ClothHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clothes.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// IncrementWear handles POST /api/clothes/{id}/wear requests.
func (h *ClothHandler) IncrementWear(w http.ResponseWriter, r *http.Request) {
	cloth, err := h.clothes.IncrementWear(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if cloth == nil {
		// Missing cloths are skipped silently by the wear ledger; at the
		// API boundary the absence is worth a 404.
		shared.RespondWithError(w, r, http.StatusNotFound, "Cloth not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cloth)
}

// DecrementWear handles POST /api/clothes/{id}/unwear requests.
func (h *ClothHandler) DecrementWear(w http.ResponseWriter, r *http.Request) {
	cloth, err := h.clothes.DecrementWear(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	if cloth == nil {
		shared.RespondWithError(w, r, http.StatusNotFound, "Cloth not found")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, cloth)
}

// WashHistory handles GET /api/clothes/{id}/wash-history requests.
func (h *ClothHandler) WashHistory(w http.ResponseWriter, r *http.Request) {
	events, err := h.laundry.WashHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, events)
}
