// internal/app/store/profiles/profilestore.go
package profilestore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("fitness_profiles")}
}

// GetByUser loads the user's fitness profile. Returns
// mongo.ErrNoDocuments when none exists yet.
func (s *Store) GetByUser(ctx context.Context, userID primitive.ObjectID) (models.FitnessProfile, error) {
	var p models.FitnessProfile
	if err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return models.FitnessProfile{}, err
	}
	return p, nil
}

// Update holds the partial-update fields for a fitness profile.
type Update struct {
	Age            *int
	HeightCm       *float64
	WeightKg       *float64
	Goal           *string
	BeforeImageURL *string
	AfterImageURL  *string
}

// Upsert merges the supplied fields onto the user's profile, creating
// the document on first write. One profile per user is enforced by a
// unique index on user_id.
func (s *Store) Upsert(ctx context.Context, userID primitive.ObjectID, u Update) (models.FitnessProfile, error) {
	now := time.Now().UTC()
	set := bson.M{"updated_at": now}
	if u.Age != nil {
		set["age"] = *u.Age
	}
	if u.HeightCm != nil {
		set["height_cm"] = *u.HeightCm
	}
	if u.WeightKg != nil {
		set["weight_kg"] = *u.WeightKg
	}
	if u.Goal != nil && strings.TrimSpace(*u.Goal) != "" {
		set["goal"] = strings.TrimSpace(*u.Goal)
	}
	if u.BeforeImageURL != nil {
		set["before_image_url"] = *u.BeforeImageURL
	}
	if u.AfterImageURL != nil {
		set["after_image_url"] = *u.AfterImageURL
	}

	var p models.FitnessProfile
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"user_id": userID},
		bson.M{
			"$set": set,
			"$setOnInsert": bson.M{
				"_id":        primitive.NewObjectID(),
				"user_id":    userID,
				"created_at": now,
			},
		},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&p)
	if err != nil {
		return models.FitnessProfile{}, err
	}
	return p, nil
}
