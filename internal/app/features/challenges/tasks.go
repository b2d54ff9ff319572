// internal/app/features/challenges/tasks.go
package challenges

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type taskRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// HandleCreateTask adds a task to one of the caller's challenges and
// links it into the challenge's task list.
func (h *Handler) HandleCreateTask(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	challengeID, err := httpapi.ObjectIDParam(r, "challengeID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid challenge id")
		return
	}
	var req taskRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Challenges.GetOwned(ctx, challengeID, ident.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "challenge not found")
			return
		}
		h.Log.Error("challenge load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create task")
		return
	}

	task, err := h.Tasks.Create(ctx, models.Task{
		ChallengeID: challengeID,
		UserID:      ident.UserID,
		Name:        sanitize.Text(req.Name),
		Description: sanitize.Text(req.Description),
	})
	if err != nil {
		h.Log.Error("task create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	if err := h.Challenges.AppendTask(ctx, challengeID, task.ID); err != nil {
		h.Log.Error("task link failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create task")
		return
	}
	httpapi.Created(w, "task created", map[string]any{"task": task})
}

// HandleListTasks returns the tasks of one of the caller's challenges.
func (h *Handler) HandleListTasks(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	challengeID, err := httpapi.ObjectIDParam(r, "challengeID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid challenge id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Challenges.GetOwned(ctx, challengeID, ident.UserID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "challenge not found")
			return
		}
		h.Log.Error("challenge load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}

	tasks, err := h.Tasks.ListByChallenge(ctx, challengeID)
	if err != nil {
		h.Log.Error("task list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list tasks")
		return
	}
	httpapi.OK(w, "tasks retrieved", map[string]any{"tasks": tasks})
}

type progressRequest struct {
	Date string `json:"date,omitempty"` // "D-M-YYYY", defaults to today
}

// HandleToggleTaskProgress flips the task's streak entry for the given
// date, appending a done entry when none exists yet. The flip and the
// append are one database operation per call.
func (h *Handler) HandleToggleTaskProgress(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	taskID, err := httpapi.ObjectIDParam(r, "taskID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}
	// Body is optional; an empty body toggles today's entry.
	var req progressRequest
	if r.ContentLength > 0 {
		if err := httpapi.Decode(r, &req); err != nil {
			httpapi.Error(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	date := req.Date
	if date == "" {
		date = time.Now().UTC().Format(models.TaskProgressDate)
	} else if _, err := time.Parse(models.TaskProgressDate, date); err != nil {
		httpapi.Error(w, http.StatusBadRequest, `date must be "D-M-YYYY"`)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	task, err := h.Tasks.ToggleProgress(ctx, taskID, ident.UserID, date)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "task not found")
			return
		}
		h.Log.Error("task progress toggle failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update task progress")
		return
	}
	httpapi.OK(w, "task progress updated", map[string]any{"task": task})
}

// HandleDeleteTask removes a task the caller owns. The challenge's
// task_ids list keeps the stale reference; reads resolve tasks by
// challenge_id so it is harmless.
func (h *Handler) HandleDeleteTask(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	taskID, err := httpapi.ObjectIDParam(r, "taskID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid task id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Tasks.Delete(ctx, taskID, ident.UserID)
	if err != nil {
		h.Log.Error("task delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete task")
		return
	}
	if n == 0 {
		httpapi.Error(w, http.StatusNotFound, "task not found")
		return
	}
	httpapi.OK(w, "task deleted", nil)
}
