// internal/app/features/challenges/handler.go

// Package challenges implements user-owned challenges and their daily
// tasks: streak-style progress where each task records which dates it
// was done.
package challenges

import (
	"github.com/dalemusser/trainhub/internal/app/store/challenges"
	"github.com/dalemusser/trainhub/internal/app/store/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for challenges.
type Handler struct {
	Challenges *challengestore.Store
	Tasks      *taskstore.Store
	Log        *zap.Logger
}

// NewHandler constructs the challenges Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Challenges: challengestore.New(db, logger),
		Tasks:      taskstore.New(db),
		Log:        logger,
	}
}
