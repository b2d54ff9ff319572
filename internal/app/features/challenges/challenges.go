// internal/app/features/challenges/challenges.go
package challenges

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type challengeRequest struct {
	Name         string `json:"name" validate:"required"`
	DurationDays int    `json:"duration_days" validate:"required,min=1"`
}

// HandleCreate creates a challenge owned by the caller. New challenges
// start inactive; call activate to start the clock.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var req challengeRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	ch, err := h.Challenges.Create(ctx, models.Challenge{
		UserID:       ident.UserID,
		Name:         sanitize.Text(req.Name),
		DurationDays: req.DurationDays,
	})
	if err != nil {
		h.Log.Error("challenge create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create challenge")
		return
	}
	httpapi.Created(w, "challenge created", map[string]any{"challenge": ch})
}

// HandleList returns all of the caller's challenges.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Challenges.ListForUser(ctx, ident.UserID)
	if err != nil {
		h.Log.Error("challenge list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list challenges")
		return
	}
	httpapi.OK(w, "challenges retrieved", map[string]any{"challenges": rows})
}

// HandleGet returns one challenge with its tasks.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "challengeID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ch, err := h.Challenges.GetOwned(ctx, id, ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "challenge not found")
			return
		}
		h.Log.Error("challenge load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load challenge")
		return
	}

	tasks, err := h.Tasks.ListByChallenge(ctx, ch.ID)
	if err != nil {
		h.Log.Error("task list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load challenge")
		return
	}
	httpapi.OK(w, "challenge retrieved", map[string]any{
		"challenge": ch,
		"tasks":     tasks,
	})
}

// HandleActivate makes this the caller's single active challenge and
// starts its duration window.
func (h *Handler) HandleActivate(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "challengeID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	ch, err := h.Challenges.Activate(ctx, id, ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "challenge not found")
			return
		}
		h.Log.Error("challenge activate failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to activate challenge")
		return
	}
	httpapi.OK(w, "challenge activated", map[string]any{"challenge": ch})
}

// HandleDelete removes a challenge and all of its tasks.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "challengeID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	tasksDeleted, err := h.Challenges.DeleteCascade(ctx, id, ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "challenge not found")
			return
		}
		h.Log.Error("challenge delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete challenge")
		return
	}
	httpapi.OK(w, "challenge deleted", map[string]any{"tasks_deleted": tasksDeleted})
}
