// internal/app/features/auth/handler.go

// Package auth implements signup with OTP verification, login, and
// token issuance. Unverified accounts cannot log in; signing up again
// with an unverified email re-sends a fresh code.
package auth

import (
	"time"

	"github.com/dalemusser/trainhub/internal/app/store/users"
	"github.com/dalemusser/trainhub/internal/app/system/mailer"
	"github.com/dalemusser/trainhub/internal/app/system/token"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the auth feature.
type Handler struct {
	Users     *userstore.Store
	Tokens    *token.Manager
	Mail      mailer.Sender
	OTPExpiry time.Duration
	Log       *zap.Logger
}

// NewHandler constructs the auth Handler.
func NewHandler(db *mongo.Database, tokens *token.Manager, mail mailer.Sender, otpExpiry time.Duration, logger *zap.Logger) *Handler {
	if otpExpiry <= 0 {
		otpExpiry = 10 * time.Minute
	}
	return &Handler{
		Users:     userstore.New(db),
		Tokens:    tokens,
		Mail:      mail,
		OTPExpiry: otpExpiry,
		Log:       logger,
	}
}
