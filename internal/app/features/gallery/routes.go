// internal/app/features/gallery/routes.go
package gallery

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Post("/", h.HandleUpload)
	r.Get("/", h.HandleList)
	r.Delete("/{imageID}", h.HandleDelete)

	return r
}
