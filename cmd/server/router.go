package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/closetkeep/wardrobe-api/internal/api"
	apiMiddleware "github.com/closetkeep/wardrobe-api/internal/api/middleware"
)

// setupRouter configures the application router with all routes and
// middleware. Only login, refresh, and the health check are public.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceID)

	authHandler := api.NewAuthHandler(app.authService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	categoryHandler := api.NewCategoryHandler(app.categoryService)
	clothHandler := api.NewClothHandler(app.clothService, app.laundryService)
	outfitHandler := api.NewOutfitHandler(app.outfitService)
	activityHandler := api.NewActivityHandler(app.activityService)
	laundryHandler := api.NewLaundryHandler(app.laundryService)
	tripHandler := api.NewTripHandler(app.tripService)
	preferencesHandler := api.NewPreferencesHandler(app.preferencesService)
	insightsHandler := api.NewInsightsHandler(app.clothService, app.outfitService, app.activityService, app.categoryService)
	backupHandler := api.NewBackupHandler(app.backupService)
	auditHandler := api.NewAuditHandler(app.auditService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.Refresh)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.Post("/", categoryHandler.CreateRoot)
				r.Get("/{id}", categoryHandler.Get)
				r.Patch("/{id}", categoryHandler.Update)
				r.Delete("/{id}", categoryHandler.Delete)
				r.Post("/{id}/children", categoryHandler.CreateChild)
				r.Get("/{id}/max-wear", categoryHandler.ResolveMaxWear)
			})

			r.Route("/clothes", func(r chi.Router) {
				r.Get("/", clothHandler.List)
				r.Post("/", clothHandler.Create)
				r.Get("/{id}", clothHandler.Get)
				r.Patch("/{id}", clothHandler.Update)
				r.Delete("/{id}", clothHandler.Delete)
				r.Post("/{id}/wear", clothHandler.IncrementWear)
				r.Post("/{id}/unwear", clothHandler.DecrementWear)
				r.Get("/{id}/wash-history", clothHandler.WashHistory)
			})

			r.Route("/outfits", func(r chi.Router) {
				r.Get("/", outfitHandler.List)
				r.Post("/", outfitHandler.Create)
				r.Get("/{id}", outfitHandler.Get)
				r.Patch("/{id}", outfitHandler.Update)
				r.Delete("/{id}", outfitHandler.Delete)
			})

			r.Route("/activities", func(r chi.Router) {
				r.Get("/", activityHandler.List)
				r.Post("/", activityHandler.Create)
				r.Get("/{id}", activityHandler.Get)
				r.Patch("/{id}", activityHandler.Update)
				r.Delete("/{id}", activityHandler.Delete)
				r.Get("/{id}/details", activityHandler.Details)
			})

			r.Route("/laundry", func(r chi.Router) {
				r.Post("/wash", laundryHandler.Wash)
				r.Post("/press", laundryHandler.Press)
				r.Post("/dirty", laundryHandler.MarkDirty)
			})

			r.Route("/trips", func(r chi.Router) {
				r.Get("/", tripHandler.List)
				r.Post("/", tripHandler.Create)
				r.Get("/{id}", tripHandler.Get)
				r.Patch("/{id}", tripHandler.Update)
				r.Delete("/{id}", tripHandler.Delete)
				r.Put("/{id}/clothes/{clothId}", tripHandler.AddCloth)
				r.Delete("/{id}/clothes/{clothId}", tripHandler.RemoveCloth)
				r.Put("/{id}/outfits/{outfitId}", tripHandler.AddOutfit)
				r.Delete("/{id}/outfits/{outfitId}", tripHandler.RemoveOutfit)
				r.Put("/{id}/essentials/{essentialId}", tripHandler.AddEssential)
				r.Delete("/{id}/essentials/{essentialId}", tripHandler.RemoveEssential)
			})

			r.Route("/essentials", func(r chi.Router) {
				r.Get("/", tripHandler.ListEssentials)
				r.Post("/", tripHandler.CreateEssential)
				r.Delete("/{id}", tripHandler.DeleteEssential)
			})

			r.Get("/preferences", preferencesHandler.Get)
			r.Patch("/preferences", preferencesHandler.Update)

			r.Get("/insights", insightsHandler.Get)

			r.Get("/backup/export", backupHandler.Export)
			r.Post("/backup/import", backupHandler.Import)

			r.Get("/audit", auditHandler.List)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
