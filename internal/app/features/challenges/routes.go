// internal/app/features/challenges/routes.go
package challenges

import (
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the challenge and task endpoints. Everything is scoped
// to the authenticated caller.
func Routes(h *Handler, tokens *token.Manager) chi.Router {
	r := chi.NewRouter()
	r.Use(tokens.RequireUser)

	r.Post("/", h.HandleCreate)
	r.Get("/", h.HandleList)
	r.Get("/{challengeID}", h.HandleGet)
	r.Post("/{challengeID}/activate", h.HandleActivate)
	r.Delete("/{challengeID}", h.HandleDelete)

	r.Post("/{challengeID}/tasks", h.HandleCreateTask)
	r.Get("/{challengeID}/tasks", h.HandleListTasks)
	r.Post("/tasks/{taskID}/progress", h.HandleToggleTaskProgress)
	r.Delete("/tasks/{taskID}", h.HandleDeleteTask)

	return r
}
