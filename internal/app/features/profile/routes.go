// internal/app/features/profile/routes.go
package profile

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Get("/me", h.HandleMe)
	r.Patch("/fitness", h.HandleUpdateFitness)
	r.Post("/picture", h.HandleUploadPicture)

	r.Get("/fitness-profile", h.HandleGetFitnessProfile)
	r.Patch("/fitness-profile", h.HandlePatchFitnessProfile)
	r.Post("/fitness-profile/before", h.HandleUploadBefore)
	r.Post("/fitness-profile/after", h.HandleUploadAfter)

	return r
}
