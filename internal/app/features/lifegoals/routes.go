// internal/app/features/lifegoals/routes.go
package lifegoals

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Patch("/{goalID}", h.HandlePatch)
	r.Delete("/{goalID}", h.HandleDelete)

	return r
}
