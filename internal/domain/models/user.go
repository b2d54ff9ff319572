// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account holder: either a regular user or an admin.
//
// Fitness attributes are embedded directly on the user document rather
// than living in a separate collection; the fitness_profiles collection
// holds the richer, mutable profile (transformation photos, goals).
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName     string             `bson:"full_name" json:"full_name"`
	FullNameCI   string             `bson:"full_name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // admin | user

	// OTP verification state. OTP is cleared once the account is verified.
	Verified     bool       `bson:"verified" json:"verified"`
	OTP          string     `bson:"otp,omitempty" json:"-"`
	OTPExpiresAt *time.Time `bson:"otp_expires_at,omitempty" json:"-"`

	// Embedded fitness attributes captured at signup.
	Age      int     `bson:"age,omitempty" json:"age,omitempty"`
	HeightCm float64 `bson:"height_cm,omitempty" json:"height_cm,omitempty"`
	WeightKg float64 `bson:"weight_kg,omitempty" json:"weight_kg,omitempty"`
	Goal     string  `bson:"goal,omitempty" json:"goal,omitempty"`

	ProfilePictureURL string `bson:"profile_picture_url,omitempty" json:"profile_picture_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
