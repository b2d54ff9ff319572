// internal/app/features/todos/handler.go

// Package todos is per-user todo CRUD.
package todos

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/trainhub/internal/app/store/todos"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type Handler struct {
	Todos *todostore.Store
	Log   *zap.Logger
}

func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Todos: todostore.New(db), Log: logger}
}

type todoRequest struct {
	Title   string     `json:"title" validate:"required"`
	Notes   string     `json:"notes,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var req todoRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Todos.Create(ctx, models.Todo{
		UserID:  ident.UserID,
		Title:   sanitize.Text(req.Title),
		Notes:   sanitize.Text(req.Notes),
		DueDate: req.DueDate,
	})
	if err != nil {
		h.Log.Error("todo create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create todo")
		return
	}
	httpapi.Created(w, "todo created", map[string]any{"todo": t})
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Todos.ListForUser(ctx, ident.UserID)
	if err != nil {
		h.Log.Error("todo list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list todos")
		return
	}
	httpapi.OK(w, "todos retrieved", map[string]any{"todos": rows})
}

type todoPatch struct {
	Title   *string    `json:"title,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
	Done    *bool      `json:"done,omitempty"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "todoID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid todo id")
		return
	}
	var p todoPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Title != nil {
		clean := sanitize.Text(*p.Title)
		p.Title = &clean
	}
	if p.Notes != nil {
		clean := sanitize.Text(*p.Notes)
		p.Notes = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Todos.ApplyUpdate(ctx, id, ident.UserID, todostore.Update{
		Title:   p.Title,
		Notes:   p.Notes,
		Done:    p.Done,
		DueDate: p.DueDate,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "todo not found")
			return
		}
		h.Log.Error("todo update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update todo")
		return
	}
	httpapi.OK(w, "todo updated", map[string]any{"todo": t})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	id, err := httpapi.ObjectIDParam(r, "todoID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid todo id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Todos.Delete(ctx, id, ident.UserID)
	if err != nil {
		h.Log.Error("todo delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete todo")
		return
	}
	if n == 0 {
		httpapi.Error(w, http.StatusNotFound, "todo not found")
		return
	}
	httpapi.OK(w, "todo deleted", nil)
}
