// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/httpapi"
	"github.com/dalemusser/trainhub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type verifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// HandleVerifyOTP checks the emailed code and marks the account
// verified. Expired codes get 410 so clients know to request a new one.
func (h *Handler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusNotFound, "no account for that email")
			return
		}
		h.Log.Error("verify lookup failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "verification failed")
		return
	}

	if user.Verified {
		httpapi.OK(w, "account already verified", nil)
		return
	}
	if user.OTP == "" || user.OTP != req.Code {
		httpapi.Error(w, http.StatusUnauthorized, "incorrect verification code")
		return
	}
	if user.OTPExpiresAt == nil || time.Now().UTC().After(*user.OTPExpiresAt) {
		httpapi.Error(w, http.StatusGone, "verification code has expired")
		return
	}

	if err := h.Users.MarkVerified(ctx, user.ID); err != nil {
		h.Log.Error("mark verified failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "verification failed")
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "verification failed")
		return
	}

	httpapi.OK(w, "account verified", map[string]any{"token": tok})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates by email and password and returns a bearer
// token. Unverified accounts are rejected with 403.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpapi.Decode(r, &req); err != nil {
		httpapi.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			httpapi.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httpapi.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if !user.Verified {
		httpapi.Error(w, http.StatusForbidden, "account is not verified")
		return
	}

	tok, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		h.Log.Error("token issue failed", zap.Error(err))
		httpapi.Error(w, http.StatusInternalServerError, "login failed")
		return
	}

	httpapi.OK(w, "login successful", map[string]any{
		"token": tok,
		"user":  user,
	})
}
