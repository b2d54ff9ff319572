// internal/app/features/plans/routes.go
package plans

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the catalog endpoints. Reads require a logged-in user;
// all writes are admin only.
func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireUser)
		r.Get("/", h.HandleList)
		r.Get("/trending", h.HandleListTrending)
		r.Get("/featured", h.HandleListFeatured)
		r.Get("/{planID}", h.HandleGet)
	})

	r.Group(func(r chi.Router) {
		r.Use(tokens.RequireAdmin)
		r.Post("/", h.HandleCreateTree)
		r.Patch("/{planID}", h.HandlePatch)
		r.Delete("/{planID}", h.HandleDelete)
		r.Post("/{planID}/trending", h.HandleToggleTrending)
		r.Post("/{planID}/featured", h.HandleToggleFeatured)
	})

	return r
}

// CatalogRoutes mounts the per-level admin CRUD under a separate
// prefix, e.g. /catalog/exercises/{id}.
func CatalogRoutes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireAdmin)

	r.Route("/exercises", func(r chi.Router) {
		r.Post("/", h.HandleCreateExercise)
		r.Get("/{exerciseID}", h.HandleGetExercise)
		r.Patch("/{exerciseID}", h.HandlePatchExercise)
		r.Delete("/{exerciseID}", h.HandleDeleteExercise)
	})
	r.Route("/categories", func(r chi.Router) {
		r.Post("/", h.HandleCreateCategory)
		r.Get("/{categoryID}", h.HandleGetCategory)
		r.Patch("/{categoryID}", h.HandlePatchCategory)
		r.Delete("/{categoryID}", h.HandleDeleteCategory)
	})
	r.Route("/days", func(r chi.Router) {
		r.Post("/", h.HandleCreateDay)
		r.Get("/{dayID}", h.HandleGetDay)
		r.Patch("/{dayID}", h.HandlePatchDay)
		r.Delete("/{dayID}", h.HandleDeleteDay)
	})
	r.Route("/weeks", func(r chi.Router) {
		r.Post("/", h.HandleCreateWeek)
		r.Get("/{weekID}", h.HandleGetWeek)
		r.Patch("/{weekID}", h.HandlePatchWeek)
		r.Delete("/{weekID}", h.HandleDeleteWeek)
	})

	return r
}
