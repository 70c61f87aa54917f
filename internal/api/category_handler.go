package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// CategoryHandler handles category HTTP requests.
type CategoryHandler struct {
	categories service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

// List handles GET /api/categories requests.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, categories)
}

// Get handles GET /api/categories/{id} requests.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	category, err := h.categories.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// CreateRoot handles POST /api/categories requests.
func (h *CategoryHandler) CreateRoot(w http.ResponseWriter, r *http.Request) {
	var data service.CategoryData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := h.categories.AddRoot(r.Context(), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// CreateChild handles POST /api/categories/{id}/children requests.
func (h *CategoryHandler) CreateChild(w http.ResponseWriter, r *http.Request) {
	var data service.CategoryData
	if err := shared.DecodeJSON(r, &data); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := h.categories.AddChild(r.Context(), chi.URLParam(r, "id"), data)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// Update handles PATCH /api/categories/{id} requests.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var update service.CategoryUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	category, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id} requests.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Remove(r.Context(), chi.URLParam(r, "id")); err != nil {
		HandleServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResolveMaxWear handles GET /api/categories/{id}/max-wear requests.
func (h *CategoryHandler) ResolveMaxWear(w http.ResponseWriter, r *http.Request) {
	limit, err := h.categories.ResolveMaxWearCount(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string]int{"maxWearCount": limit})
}
