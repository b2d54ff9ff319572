// internal/app/features/progress/progress.go
package progress

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleSelectPlan enrolls the caller in a plan: the plan tree is
// flattened into a fresh progress document with every exercise marked
// incomplete.
func (h *Handler) HandleSelectPlan(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	planID, err := httpapi.ObjectIDParam(r, "planID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	populated, err := h.Plans.GetPopulated(ctx, planID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "plan not found")
			return
		}
		h.Log.Error("plan load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to select plan")
		return
	}

	up, err := h.UserPlans.CreateFromPlan(ctx, ident.UserID, populated)
	if err != nil {
		h.Log.Error("progress create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to select plan")
		return
	}
	httpapi.Created(w, "plan selected", map[string]any{"progress": up})
}

type completionRequest struct {
	ExerciseID string         `json:"exercise_id" validate:"required"`
	Completed  bool           `json:"completed"`
	SetData    map[string]any `json:"set_data,omitempty"`
}

// HandleSetCompletion marks one exercise complete or incomplete in the
// caller's progress. The counter and percentage recompute in the same
// database operation as the flag flip, so concurrent toggles cannot
// drift.
func (h *Handler) HandleSetCompletion(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var req completionRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	exerciseID, err := primitive.ObjectIDFromHex(req.ExerciseID)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid exercise id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	up, err := h.UserPlans.SetCompletion(ctx, ident.UserID, exerciseID, req.Completed, bson.M(req.SetData))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "no progress entry for that exercise")
			return
		}
		h.Log.Error("completion update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update completion")
		return
	}
	httpapi.OK(w, "completion updated", map[string]any{"progress": up})
}

// HandleList returns the caller's progress documents, exercises
// resolved, optionally filtered to one plan via ?plan_id=.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	var planID *primitive.ObjectID
	if raw := r.URL.Query().Get("plan_id"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
			return
		}
		planID = &id
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.UserPlans.ListForUser(ctx, ident.UserID, planID)
	if err != nil {
		h.Log.Error("progress list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load progress")
		return
	}
	httpapi.OK(w, "progress retrieved", map[string]any{"progress": rows})
}
