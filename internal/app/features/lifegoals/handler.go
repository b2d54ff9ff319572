// internal/app/features/lifegoals/handler.go

// Package lifegoals is per-user life-goal CRUD.
package lifegoals

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/trainhub/internal/app/store/lifegoals"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Goals *lifegoalstore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Goals: lifegoalstore.New(db), Log: logger}
}

type goalRequest struct {
	Title      string     `json:"title" validate:"required"`
	Details    string     `json:"details,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var req goalRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Goals.Create(ctx, models.LifeGoal{
		UserID:     ident.UserID,
		Title:      sanitize.Text(req.Title),
		Details:    sanitize.Text(req.Details),
		TargetDate: req.TargetDate,
	})
	if err != nil {
		h.Log.Error("life goal create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create life goal")
		return
	}
	httpapi.Created(w, "life goal created", map[string]any{"goal": g})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Goals.ListForUser(ctx, ident.UserID)
	if err != nil {
		h.Log.Error("life goal list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list life goals")
		return
	}
	httpapi.OK(w, "life goals retrieved", map[string]any{"goals": rows})
}

type goalPatch struct {
	Title      *string    `json:"title,omitempty"`
	Details    *string    `json:"details,omitempty"`
	Achieved   *bool      `json:"achieved,omitempty"`
	TargetDate *time.Time `json:"target_date,omitempty"`
}

func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "goalID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid goal id")
		return
	}
	var p goalPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Title != nil {
		clean := sanitize.Text(*p.Title)
		p.Title = &clean
	}
	if p.Details != nil {
		clean := sanitize.Text(*p.Details)
		p.Details = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	g, err := h.Goals.ApplyUpdate(ctx, id, ident.UserID, lifegoalstore.Update{
		Title:      p.Title,
		Details:    p.Details,
		Achieved:   p.Achieved,
		TargetDate: p.TargetDate,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "life goal not found")
			return
		}
		h.Log.Error("life goal update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update life goal")
		return
	}
	httpapi.OK(w, "life goal updated", map[string]any{"goal": g})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "goalID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid goal id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Goals.Delete(ctx, id, ident.UserID)
	if err != nil {
		h.Log.Error("life goal delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete life goal")
		return
	}
	if n == 0 {
		httpapi.Error(w, http.StatusNotFound, "life goal not found")
		return
	}
	httpapi.OK(w, "life goal deleted", nil)
}
