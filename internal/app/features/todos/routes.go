// internal/app/features/todos/routes.go
package todos

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Patch("/{todoID}", h.HandlePatch)
	r.Delete("/{todoID}", h.HandleDelete)

	return r
}
