// internal/app/features/profile/handler.go

// Package profile serves the caller's own account: basic info, the
// embedded fitness attributes, the fitness profile document with its
// transformation photos, and the profile picture.
package profile

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/trainhub/internal/app/store/profiles"
	"github.com/dalemusser/trainhub/internal/app/store/users"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the profile feature.
type Handler struct {
	Users    *userstore.Store
	Profiles *profilestore.Store
	Storage  storage.Store
	Log      *zap.Logger
}

// NewHandler constructs the profile Handler.
func NewHandler(db *mongo.Database, store storage.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userstore.New(db),
		Profiles: profilestore.New(db),
		Storage:  store,
		Log:      logger,
	}
}

// HandleMe returns the caller's account document.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, ident.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "account not found")
			return
		}
		h.Log.Error("user load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load account")
		return
	}
	httpapi.OK(w, "account retrieved", map[string]any{"user": user})
}

type fitnessPatch struct {
	Age      int     `json:"age,omitempty"`
	HeightCm float64 `json:"height_cm,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
	Goal     string  `json:"goal,omitempty"`
}

// HandleUpdateFitness merges the supplied fitness attributes onto the
// caller's account. Zero values leave the stored value untouched.
func (h *Handler) HandleUpdateFitness(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var p fitnessPatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.UpdateFitness(ctx, ident.UserID, p.Age, p.HeightCm, p.WeightKg, sanitize.Text(p.Goal))
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "account not found")
			return
		}
		h.Log.Error("fitness update failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update fitness info")
		return
	}
	httpapi.OK(w, "fitness info updated", map[string]any{"user": user})
}

// HandleGetFitnessProfile returns the caller's fitness profile. A user
// who never wrote one gets an empty profile rather than a 404.
func (h *Handler) HandleGetFitnessProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Profiles.GetByUser(ctx, ident.UserID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("profile load failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	httpapi.OK(w, "profile retrieved", map[string]any{"profile": p})
}

type profilePatch struct {
	Age      *int     `json:"age,omitempty"`
	HeightCm *float64 `json:"height_cm,omitempty"`
	WeightKg *float64 `json:"weight_kg,omitempty"`
	Goal     *string  `json:"goal,omitempty"`
}

// HandlePatchFitnessProfile upserts the caller's fitness profile.
func (h *Handler) HandlePatchFitnessProfile(w http.ResponseWriter, r *http.Request) {
	ident, _ := token.FromContext(r.Context())
	var p profilePatch
	if err := httpapi.Decode(r, &p); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if p.Goal != nil {
		clean := sanitize.Text(*p.Goal)
		p.Goal = &clean
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	prof, err := h.Profiles.Upsert(ctx, ident.UserID, profilestore.Update{
		Age:      p.Age,
		HeightCm: p.HeightCm,
		WeightKg: p.WeightKg,
		Goal:     p.Goal,
	})
	if err != nil {
		h.Log.Error("profile upsert failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	httpapi.OK(w, "profile updated", map[string]any{"profile": prof})
}
