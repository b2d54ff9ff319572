// internal/app/features/plans/catalog.go
package plans

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/store/categories"
	"github.com/dalemusser/trainhub/internal/app/store/days"
	"github.com/dalemusser/trainhub/internal/app/store/exercises"
	"github.com/dalemusser/trainhub/internal/app/store/weeks"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Admin CRUD for the lower catalog levels. Each level can be managed
// independently of the tree it was authored in, which is how content
// editors fix a single exercise without re-uploading a whole plan.

// respond writes the usual outcome for a store call that returns a
// document and an error.
func respond[T any](h *Handler, w http.ResponseWriter, kind, verb string, doc T, err error) {
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, kind+" not found")
			return
		}
		h.Log.Error(kind+" "+verb+" failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to "+verb+" "+kind)
		return
	}
	httpapi.OK(w, kind+" "+verb+"d", map[string]any{kind: doc})
}

// ---- exercises ----

type exerciseBody struct {
	Name        string `json:"name" validate:"required"`
	Sets        int    `json:"sets,omitempty"`
	Reps        int    `json:"reps,omitempty"`
	TimeSeconds int    `json:"time_seconds,omitempty"`
	RestSeconds int    `json:"rest_seconds,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

func (h *Handler) HandleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var b exerciseBody
	if err := httpapi.Decode(r, &b); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Exercises.Create(ctx, models.Exercise{
		Name:        b.Name,
		Sets:        b.Sets,
		Reps:        b.Reps,
		TimeSeconds: b.TimeSeconds,
		RestSeconds: b.RestSeconds,
		ImageURL:    b.ImageURL,
		VideoURL:    b.VideoURL,
	})
	if err != nil {
		h.Log.Error("exercise create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create exercise")
		return
	}
	httpapi.Created(w, "exercise created", map[string]any{"exercise": e})
}

func (h *Handler) HandleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "exerciseID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid exercise id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Exercises.GetByID(ctx, id)
	respond(h, w, "exercise", "retrieve", e, err)
}

type exercisePatch struct {
	Name        *string `json:"name,omitempty"`
	Sets        *int    `json:"sets,omitempty"`
	Reps        *int    `json:"reps,omitempty"`
	TimeSeconds *int    `json:"time_seconds,omitempty"`
	RestSeconds *int    `json:"rest_seconds,omitempty"`
	ImageURL    *string `json:"image_url,omitempty"`
	VideoURL    *string `json:"video_url,omitempty"`
}

func (h *Handler) HandlePatchExercise(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "exerciseID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid exercise id")
		return
	}
	var p exercisePatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	e, err := h.Exercises.ApplyUpdate(ctx, id, exercisestore.Update{
		Name:        p.Name,
		Sets:        p.Sets,
		Reps:        p.Reps,
		TimeSeconds: p.TimeSeconds,
		RestSeconds: p.RestSeconds,
		ImageURL:    p.ImageURL,
		VideoURL:    p.VideoURL,
	})
	respond(h, w, "exercise", "update", e, err)
}

func (h *Handler) HandleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	h.deleteDoc(w, r, "exercise", "exerciseID", h.Exercises.Delete)
}

// ---- categories ----

type categoryBody struct {
	SubCategory        string   `json:"sub_category" validate:"required"`
	CircuitRestSeconds int      `json:"circuit_rest_seconds,omitempty"`
	CircuitReps        int      `json:"circuit_reps,omitempty"`
	ExerciseIDs        []string `json:"exercise_ids,omitempty"`
}

func (h *Handler) HandleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var b categoryBody
	if err := httpapi.Decode(r, &b); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(b.ExerciseIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "exercise_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Categories.Create(ctx, models.Category{
		SubCategory:        b.SubCategory,
		CircuitRestSeconds: b.CircuitRestSeconds,
		CircuitReps:        b.CircuitReps,
		ExerciseIDs:        ids,
	})
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	httpapi.Created(w, "category created", map[string]any{"category": c})
}

func (h *Handler) HandleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "categoryID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Categories.GetByID(ctx, id)
	respond(h, w, "category", "retrieve", c, err)
}

type categoryPatch struct {
	SubCategory        *string  `json:"sub_category,omitempty"`
	CircuitRestSeconds *int     `json:"circuit_rest_seconds,omitempty"`
	CircuitReps        *int     `json:"circuit_reps,omitempty"`
	ExerciseIDs        []string `json:"exercise_ids,omitempty"`
}

func (h *Handler) HandlePatchCategory(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "categoryID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid category id")
		return
	}
	var p categoryPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(p.ExerciseIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "exercise_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	c, err := h.Categories.ApplyUpdate(ctx, id, categorystore.Update{
		SubCategory:        p.SubCategory,
		CircuitRestSeconds: p.CircuitRestSeconds,
		CircuitReps:        p.CircuitReps,
		ExerciseIDs:        ids,
	})
	respond(h, w, "category", "update", c, err)
}

func (h *Handler) HandleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.deleteDoc(w, r, "category", "categoryID", h.Categories.Delete)
}

// ---- days ----

type dayBody struct {
	DayNumber   int      `json:"day_number"`
	Name        string   `json:"name" validate:"required"`
	BannerURL   string   `json:"banner_url,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

func (h *Handler) HandleCreateDay(w http.ResponseWriter, r *http.Request) {
	var b dayBody
	if err := httpapi.Decode(r, &b); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(b.CategoryIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "category_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Days.Create(ctx, models.Day{
		DayNumber:   b.DayNumber,
		Name:        b.Name,
		BannerURL:   b.BannerURL,
		VideoURL:    b.VideoURL,
		CategoryIDs: ids,
	})
	if err != nil {
		h.Log.Error("day create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create day")
		return
	}
	httpapi.Created(w, "day created", map[string]any{"day": d})
}

func (h *Handler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "dayID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid day id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Days.GetByID(ctx, id)
	respond(h, w, "day", "retrieve", d, err)
}

type dayPatch struct {
	DayNumber   *int     `json:"day_number,omitempty"`
	Name        *string  `json:"name,omitempty"`
	BannerURL   *string  `json:"banner_url,omitempty"`
	VideoURL    *string  `json:"video_url,omitempty"`
	CategoryIDs []string `json:"category_ids,omitempty"`
}

func (h *Handler) HandlePatchDay(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "dayID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid day id")
		return
	}
	var p dayPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(p.CategoryIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "category_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	d, err := h.Days.ApplyUpdate(ctx, id, daystore.Update{
		DayNumber:   p.DayNumber,
		Name:        p.Name,
		BannerURL:   p.BannerURL,
		VideoURL:    p.VideoURL,
		CategoryIDs: ids,
	})
	respond(h, w, "day", "update", d, err)
}

func (h *Handler) HandleDeleteDay(w http.ResponseWriter, r *http.Request) {
	h.deleteDoc(w, r, "day", "dayID", h.Days.Delete)
}

// ---- weeks ----

type weekBody struct {
	WeekNumber int      `json:"week_number" validate:"required,min=1"`
	DayIDs     []string `json:"day_ids,omitempty"`
}

func (h *Handler) HandleCreateWeek(w http.ResponseWriter, r *http.Request) {
	var b weekBody
	if err := httpapi.Decode(r, &b); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(b.DayIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "day_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wk, err := h.Weeks.Create(ctx, models.Week{WeekNumber: b.WeekNumber, DayIDs: ids})
	if err != nil {
		h.Log.Error("week create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to create week")
		return
	}
	httpapi.Created(w, "week created", map[string]any{"week": wk})
}

func (h *Handler) HandleGetWeek(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "weekID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid week id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wk, err := h.Weeks.GetByID(ctx, id)
	respond(h, w, "week", "retrieve", wk, err)
}

type weekPatch struct {
	WeekNumber *int     `json:"week_number,omitempty"`
	DayIDs     []string `json:"day_ids,omitempty"`
}

func (h *Handler) HandlePatchWeek(w http.ResponseWriter, r *http.Request) {
	id, err := httpapi.ObjectIDParam(r, "weekID")
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid week id")
		return
	}
	var p weekPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	ids, err := httpapi.ObjectIDs(p.DayIDs)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "day_ids contains an invalid id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wk, err := h.Weeks.ApplyUpdate(ctx, id, weekstore.Update{WeekNumber: p.WeekNumber, DayIDs: ids})
	respond(h, w, "week", "update", wk, err)
}

func (h *Handler) HandleDeleteWeek(w http.ResponseWriter, r *http.Request) {
	h.deleteDoc(w, r, "week", "weekID", h.Weeks.Delete)
}

// deleteDoc runs the shared delete flow for a catalog level.
func (h *Handler) deleteDoc(w http.ResponseWriter, r *http.Request, kind, param string, del func(context.Context, primitive.ObjectID) (int64, error)) {
	id, err := httpapi.ObjectIDParam(r, param)
	if err != nil {
		httpapi.Error(w, http.StatusBadRequest, "invalid "+kind+" id")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := del(ctx, id)
	if err != nil {
		h.Log.Error(kind+" delete failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to delete "+kind)
		return
	}
	if n == 0 {
		httpapi.Error(w, http.StatusNotFound, kind+" not found")
		return
	}
	httpapi.OK(w, kind+" deleted", nil)
}
