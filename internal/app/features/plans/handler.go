// internal/app/features/plans/handler.go

// Package plans serves the workout-plan catalog: listing and reading
// plans, authoring whole plan trees, partial updates at every level of
// the hierarchy, and the trending/featured flags.
package plans

import (
	"github.com/dalemusser/trainhub/internal/app/store/categories"
	"github.com/dalemusser/trainhub/internal/app/store/days"
	"github.com/dalemusser/trainhub/internal/app/store/exercises"
	"github.com/dalemusser/trainhub/internal/app/store/plans"
	"github.com/dalemusser/trainhub/internal/app/store/weeks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler is the shared dependency container for the plan catalog.
type Handler struct {
	Plans      *planstore.Store
	Weeks      *weekstore.Store
	Days       *daystore.Store
	Categories *categorystore.Store
	Exercises  *exercisestore.Store
	Log        *zap.Logger
}

// NewHandler constructs the catalog Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Plans:      planstore.New(db),
		Weeks:      weekstore.New(db),
		Days:       daystore.New(db),
		Categories: categorystore.New(db),
		Exercises:  exercisestore.New(db),
		Log:        logger,
	}
}
