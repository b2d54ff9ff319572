// internal/app/features/auth/signup.go
package auth

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/trainhub/internal/app/store/users"
	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	FullName string  `json:"full_name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Age      int     `json:"age,omitempty"`
	HeightCm float64 `json:"height_cm,omitempty"`
	WeightKg float64 `json:"weight_kg,omitempty"`
	Goal     string  `json:"goal,omitempty"`
}

// HandleSignup creates an unverified account and mails a verification
// code. Signing up again with an existing unverified email re-issues
// the code; a verified email conflicts.
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if existing, err := h.Users.GetByEmail(ctx, req.Email); err == nil {
		if existing.Verified {
			httpapi.Error(w, http.StatusConflict, "email already registered")
			return
		}
		if err := h.issueOTP(ctx, existing.ID, existing.Email); err != nil {
			h.Log.Error("otp re-issue failed", zap.Error(err))
			httpapi.Error(w, http.StatusInternalServerError, "failed to send verification code")
			return
		}
		httpapi.OK(w, "verification code re-sent", nil)
		return
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("signup email lookup failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	user, err := h.Users.Create(ctx, models.User{
		FullName:     req.FullName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		Age:          req.Age,
		HeightCm:     req.HeightCm,
		WeightKg:     req.WeightKg,
		Goal:         req.Goal,
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			httpapi.Error(w, http.StatusConflict, "email already registered")
			return
		}
		h.Log.Error("user create failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	if err := h.issueOTP(ctx, user.ID, user.Email); err != nil {
		h.Log.Error("otp issue failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "failed to send verification code")
		return
	}

	httpapi.Created(w, "account created, verification code sent", map[string]any{
		"user": user,
	})
}

// issueOTP stores a fresh code on the user and mails it.
func (h *Handler) issueOTP(ctx context.Context, userID primitive.ObjectID, email string) error {
	code, err := generateOTP(6)
	if err != nil {
		return err
	}
	if err := h.Users.SetOTP(ctx, userID, code, time.Now().UTC().Add(h.OTPExpiry)); err != nil {
		return err
	}
	return h.Mail.SendOTP(email, code)
}

// generateOTP returns a zero-padded numeric code of the given length
// from crypto/rand.
func generateOTP(digits int) (string, error) {
	max := uint64(1)
	for i := 0; i < digits; i++ {
		max *= 10
	}
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	num := binary.LittleEndian.Uint64(b) % max
	return fmt.Sprintf(fmt.Sprintf("%%0%dd", digits), num), nil
}
