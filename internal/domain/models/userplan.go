// internal/domain/models/userplan.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserPlanEntry is one exercise slot in a user's selected plan. Entries
// are stored flat, in plan traversal order (week, day, category,
// exercise), so clients can render linear progress without re-walking
// the catalog tree.
type UserPlanEntry struct {
	ExerciseID     primitive.ObjectID `bson:"exercise_id" json:"exercise_id"`
	Completed      bool               `bson:"completed" json:"completed"`
	CompletionDate *time.Time         `bson:"completion_date,omitempty" json:"completion_date,omitempty"`

	// SetData carries optional set/rep/weight detail supplied with a
	// completion toggle. It is opaque pass-through; no schema is imposed.
	SetData bson.M `bson:"set_data,omitempty" json:"set_data,omitempty"`
}

// UserPlan is a per-(user, plan) progress snapshot created when a user
// selects a plan. TotalExercises is fixed at selection time; the counters
// and percentage are recomputed atomically on every completion toggle and
// are never written directly by callers.
type UserPlan struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	PlanID primitive.ObjectID `bson:"plan_id" json:"plan_id"`

	Exercises []UserPlanEntry `bson:"exercises" json:"exercises"`

	TotalExercises       int     `bson:"total_exercises" json:"total_exercises"`
	CompletedExercises   int     `bson:"completed_exercises" json:"completed_exercises"`
	CompletionPercentage float64 `bson:"completion_percentage" json:"completion_percentage"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
