// internal/domain/models/challenge.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskProgressDate is the layout for Task progress date strings.
// Dates are stored as "D-M-YYYY" (no zero padding), matching what the
// mobile clients send.
const TaskProgressDate = "2-1-2006"

// TaskProgress is one day's entry in a task's streak history.
type TaskProgress struct {
	Date   string `bson:"date" json:"date"` // "D-M-YYYY"
	Status bool   `bson:"status" json:"status"`
}

// Task is a daily habit inside a challenge. Toggling today's progress
// flips the existing entry for today, or appends one with status=true.
type Task struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChallengeID primitive.ObjectID `bson:"challenge_id" json:"challenge_id"`
	UserID      primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	Progress []TaskProgress `bson:"progress" json:"progress"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Challenge owns an ordered list of tasks by reference. At most one
// challenge per user is active at a time; activating one deactivates the
// rest. Deleting a challenge cascades to its tasks.
type Challenge struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Name   string             `bson:"name" json:"name"`

	TaskIDs []primitive.ObjectID `bson:"task_ids" json:"task_ids"`

	DurationDays int        `bson:"duration_days" json:"duration_days"`
	Active       bool       `bson:"active" json:"active"`
	StartDate    *time.Time `bson:"start_date,omitempty" json:"start_date,omitempty"`
	EndDate      *time.Time `bson:"end_date,omitempty" json:"end_date,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
