package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// ActivityHandler handles activity ledger HTTP requests.
type ActivityHandler struct {
	activities service.ActivityService
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(activities service.ActivityService) *ActivityHandler {
	return &ActivityHandler{activities: activities}
}

// List handles GET /api/activities requests. With ?grouped=true the logs
// come back keyed by calendar day instead of as a flat list.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("grouped") == "true" {
		grouped, err := h.activities.GroupByDate(r.Context())
		if err != nil {
			HandleServiceError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, grouped)
		return
	}

	logs, err := h.activities.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, logs)
}

// Get handles GET /api/activities/{id} requests.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	log, err := h.activities.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, log)
}

// Details handles GET /api/activities/{id}/details requests.
func (h *ActivityHandler) Details(w http.ResponseWriter, r *http.Request) {
	details, err := h.activities.ResolveDetails(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, details)
}

// Create handles POST /api/activities requests.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	var data service.ActivityData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	log, err := h.activities.Log(r.Context(), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, log)
}

// Update handles PATCH /api/activities/{id} requests.
func (h *ActivityHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.ActivityUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	log, err := h.activities.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, log)
}

// Delete handles DELETE /api/activities/{id} requests.
func (h *ActivityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.activities.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
