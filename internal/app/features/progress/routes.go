// internal/app/features/progress/routes.go
package progress

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the progress endpoints. Everything here is scoped to
// the authenticated caller.
func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Get("/", h.HandleList)
	r.Post("/plans/{planID}", h.HandleSelectPlan)
	r.Post("/completion", h.HandleSetCompletion)

	return r
}
