// internal/domain/models/personal.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The types in this file are independent per-user documents with plain
// CRUD and no cross-entity invariants.

// Todo is a simple per-user task item.
type Todo struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Title     string     `bson:"title" json:"title"`
	Notes     string     `bson:"notes,omitempty" json:"notes,omitempty"`
	Done      bool       `bson:"done" json:"done"`
	DueDate   *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// LifeGoal is a longer-horizon goal with an optional target date.
type LifeGoal struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Title      string     `bson:"title" json:"title"`
	Details    string     `bson:"details,omitempty" json:"details,omitempty"`
	Achieved   bool       `bson:"achieved" json:"achieved"`
	TargetDate *time.Time `bson:"target_date,omitempty" json:"target_date,omitempty"`
	CreatedAt  time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `bson:"updated_at" json:"updated_at"`
}

// GalleryImage records an uploaded image and where it lives in object
// storage. URL is the public URL handed back to clients.
type GalleryImage struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Caption     string    `bson:"caption,omitempty" json:"caption,omitempty"`
	StoragePath string    `bson:"storage_path" json:"-"`
	URL         string    `bson:"url" json:"url"`
	ContentType string    `bson:"content_type,omitempty" json:"content_type,omitempty"`
	SizeBytes   int64     `bson:"size_bytes,omitempty" json:"size_bytes,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// FitnessProfile holds the mutable fitness profile for a user: current
// measurements plus transformation photos. One document per user.
type FitnessProfile struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`

	Age      int     `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm float64 `bson:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKg float64 `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Goal     string  `bson:"goal,omitempty" json:"goal,omitempty"`

	BeforeImageURL string `bson:"before_image_url,omitempty" json:"before_image_url,omitempty"`
	AfterImageURL  string `bson:"after_image_url,omitempty" json:"after_image_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
