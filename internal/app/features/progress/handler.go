// internal/app/features/progress/handler.go

// Package progress tracks each user's journey through the plans they
// select: per-exercise completion, optional set data, and the derived
// completion percentage.
package progress

import (
	"github.com/dalemusser/trainhub/internal/app/store/plans"
	"github.com/dalemusser/trainhub/internal/app/store/userplans"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for progress tracking.
type Handler struct {
	Plans     *planstore.Store
	UserPlans *userplanstore.Store
	Log       *zap.Logger
}

// NewHandler constructs the progress Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Plans:     planstore.New(db),
		UserPlans: userplanstore.New(db),
		Log:       logger,
	}
}
