package api

import (
	"net/http"

	"github.com/closetkeep/wardrobe-api/internal/api/shared"
	"github.com/closetkeep/wardrobe-api/internal/insights"
	"github.com/closetkeep/wardrobe-api/internal/service"
)

// InsightsHandler computes the analytics report on demand. The engine is
// a pure function; this handler's only job is assembling a fresh snapshot
// from the services for every request.
type InsightsHandler struct {
	clothes    service.ClothService
	outfits    service.OutfitService
	activities service.ActivityService
	categories service.CategoryService
}

// NewInsightsHandler creates a new InsightsHandler.
func NewInsightsHandler(
	clothes service.ClothService,
	outfits service.OutfitService,
	activities service.ActivityService,
	categories service.CategoryService,
) *InsightsHandler {
	return &InsightsHandler{
		clothes:    clothes,
		outfits:    outfits,
		activities: activities,
		categories: categories,
	}
}

// Get handles GET /api/insights requests.
func (h *InsightsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clothes, err := h.clothes.List(ctx)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	outfits, err := h.outfits.List(ctx)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	activities, err := h.activities.List(ctx)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}
	categories, err := h.categories.List(ctx)
	if err != nil {
		HandleServiceError(w, r, err)
		return
	}

	report := insights.Compute(insights.Snapshot{
		Clothes:    clothes,
		Outfits:    outfits,
		Activities: activities,
		Categories: categories,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, report)
}
