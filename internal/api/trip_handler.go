package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/domain"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// CreateEssentialRequest is the request body for POST /api/essentials.
type CreateEssentialRequest struct {
	Name string `json:"name" validate:"required,min=1"`
	Icon string `json:"icon,omitempty"`
}

// TripHandler handles trip and essential HTTP requests.
type TripHandler struct {
	trips service.TripService
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips service.TripService) *TripHandler {
	return &TripHandler{trips: trips}
}

// List handles GET /api/trips requests.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.trips.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, trips)
}

// Get handles GET /api/trips/{id} requests.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	trip, err := h.trips.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, trip)
}

// Create handles POST /api/trips requests.
func (h *TripHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data service.TripData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := h.trips.Create(r.Context(), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, trip)
}

// Update handles PATCH /api/trips/{id} requests.
func (h *TripHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.TripUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	trip, err := h.trips.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, trip)
}

// Delete handles DELETE /api/trips/{id} requests.
func (h *TripHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddCloth handles PUT /api/trips/{id}/clothes/{clothId} requests.
func (h *TripHandler) AddCloth(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.AddCloth(r.Context(), tripID, chi.URLParam(r, "clothId"))
	})
}

// RemoveCloth handles DELETE /api/trips/{id}/clothes/{clothId} requests.
func (h *TripHandler) RemoveCloth(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.RemoveCloth(r.Context(), tripID, chi.URLParam(r, "clothId"))
	})
}

// AddOutfit handles PUT /api/trips/{id}/outfits/{outfitId} requests.
func (h *TripHandler) AddOutfit(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.AddOutfit(r.Context(), tripID, chi.URLParam(r, "outfitId"))
	})
}

// RemoveOutfit handles DELETE /api/trips/{id}/outfits/{outfitId} requests.
func (h *TripHandler) RemoveOutfit(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.RemoveOutfit(r.Context(), tripID, chi.URLParam(r, "outfitId"))
	})
}

// AddEssential handles PUT /api/trips/{id}/essentials/{essentialId} requests.
func (h *TripHandler) AddEssential(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.AddEssential(r.Context(), tripID, chi.URLParam(r, "essentialId"))
	})
}

// RemoveEssential handles DELETE /api/trips/{id}/essentials/{essentialId} requests.
func (h *TripHandler) RemoveEssential(w http.ResponseWriter, r *http.Request) {
	h.mutateRefs(w, r, func(tripID string) (*domain.Trip, error) {
		return h.trips.RemoveEssential(r.Context(), tripID, chi.URLParam(r, "essentialId"))
	})
}

func (h *TripHandler) mutateRefs(w http.ResponseWriter, r *http.Request, op func(tripID string) (*domain.Trip, error)) {
	trip, err := op(chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, trip)
}

// ListEssentials handles GET /api/essentials requests.
func (h *TripHandler) ListEssentials(w http.ResponseWriter, r *http.Request) {
	essentials, err := h.trips.ListEssentials(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, essentials)
}

// CreateEssential handles POST /api/essentials requests.
func (h *TripHandler) CreateEssential(w http.ResponseWriter, r *http.Request) {
	var req CreateEssentialRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Essential name is required")
		return
	}

	essential, err := h.trips.CreateEssential(r.Context(), req.Name, req.Icon)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, essential)
}

// DeleteEssential handles DELETE /api/essentials/{id} requests.
func (h *TripHandler) DeleteEssential(w http.ResponseWriter, r *http.Request) {
	if err := h.trips.DeleteEssential(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
