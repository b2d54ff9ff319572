// internal/app/features/plans/plans.go
package plans

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/store/plans"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// HandleList returns plan summaries matching the optional query
// filters. Filters tolerate whitespace and case differences, so
// ?name=legday matches "Leg Day".
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := planstore.Filter{
		Name:         q.Get("name"),
		Location:     q.Get("location"),
		Level:        q.Get("level"),
		TrainingType: q.Get("training_type"),
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	rows, err := h.Plans.List(ctx, f)
	if err != nil {
		h.Log.Error("plan list failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list plans")
		return
	}
	httpapi.OK(w, "plans retrieved", map[string]any{"plans": rows})
}

// HandleGet returns one plan with its full week/day/category/exercise
// tree resolved.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "planID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	plan, err := h.Plans.GetPopulated(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "plan not found")
			return
		}
		h.Log.Error("plan populate failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	httpapi.OK(w, "plan retrieved", map[string]any{"plan": plan})
}

// HandleCreateTree accepts a whole nested plan document and persists
// every level of it. Admin only.
func (h *Handler) HandleCreateTree(w http.ResponseWriter, r *http.Request) {
	var in planstore.TreeInput
	if err := httpapi.Decode(r, &in); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	plan, err := h.Plans.CreateTree(ctx, in)
	if err != nil {
		h.Log.Error("plan tree create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create plan")
		return
	}
	httpapi.Created(w, "plan created", map[string]any{"plan": plan})
}

type planPatch struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Location     *string  `json:"location,omitempty"`
	Level        *string  `json:"level,omitempty"`
	TrainingType *string  `json:"training_type,omitempty"`
	AgeGroup     *string  `json:"age_group,omitempty"`
	BannerURL    *string  `json:"banner_url,omitempty"`
	WeekIDs      []string `json:"week_ids,omitempty"`
}

// HandlePatch applies a partial update to plan metadata. Admin only.
func (h *Handler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "planID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
		return
	}
	var p planPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	weekIDs, err := httpapi.ObjectIDs(p.WeekIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "week_ids contains an invalid id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	plan, err := h.Plans.ApplyUpdate(ctx, id, planstore.Update{
		Name:         p.Name,
		Description:  p.Description,
		Location:     p.Location,
		Level:        p.Level,
		TrainingType: p.TrainingType,
		AgeGroup:     p.AgeGroup,
		BannerURL:    p.BannerURL,
		WeekIDs:      weekIDs,
	})
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "plan not found")
			return
		}
		h.Log.Error("plan update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update plan")
		return
	}
	httpapi.OK(w, "plan updated", map[string]any{"plan": plan})
}

// HandleDelete removes a plan document. Child documents are left in
// place; other plans may still reference them. Admin only.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "planID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Plans.Delete(ctx, id)
	if err != nil {
		h.Log.Error("plan delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete plan")
		return
	}
	if n == 0 {
		httpapi.Error(w, http.StatusNotFound, "plan not found")
		return
	}
	httpapi.OK(w, "plan deleted", nil)
}

// HandleToggleTrending flips the trending flag and reports the new
// state. Admin only.
func (h *Handler) HandleToggleTrending(w http.ResponseWriter, r *http.Request) {
	h.toggleFlag(w, r, "trending", h.Plans.ToggleTrending)
}

// HandleToggleFeatured flips the featured flag. Admin only.
func (h *Handler) HandleToggleFeatured(w http.ResponseWriter, r *http.Request) {
	h.toggleFlag(w, r, "featured", h.Plans.ToggleFeatured)
}

func (h *Handler) toggleFlag(w http.ResponseWriter, r *http.Request, name string, toggle func(context.Context, primitive.ObjectID) (bool, error)) {
	id, err := httpapi.ObjectIDParam(r, "planID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	state, err := toggle(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "plan not found")
			return
		}
		h.Log.Error("plan flag toggle failed", zap.String("flag", name), zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to toggle "+name)
		return
	}
	httpapi.OK(w, name+" flag updated", map[string]any{name: state})
}

// HandleListTrending returns all trending plans, fully populated.
func (h *Handler) HandleListTrending(w http.ResponseWriter, r *http.Request) {
	h.listFlagged(w, r, "trending")
}

// HandleListFeatured returns all featured plans, fully populated.
func (h *Handler) HandleListFeatured(w http.ResponseWriter, r *http.Request) {
	h.listFlagged(w, r, "featured")
}

func (h *Handler) listFlagged(w http.ResponseWriter, r *http.Request, field string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	rows, err := h.Plans.ListFlagged(ctx, field)
	if err != nil {
		h.Log.Error("flagged plan list failed", zap.String("flag", field), zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to list "+field+" plans")
		return
	}
	httpapi.OK(w, field+" plans retrieved", map[string]any{"plans": rows})
}
