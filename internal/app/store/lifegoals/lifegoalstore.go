// internal/app/store/lifegoals/lifegoalstore.go
package lifegoalstore

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
	return &Store{c: db.Collection("life_goals")}
}

func (s *Store) Create(ctx context.Context, g models.LifeGoal) (models.LifeGoal, error) {
	now := time.Now().UTC()
	g.ID = primitive.NewObjectID()
	g.Title = strings.TrimSpace(g.Title)
	g.CreatedAt = now
	g.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		return models.LifeGoal{}, err
	}
	return g, nil
}

// ListForUser returns the user's life goals, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.LifeGoal, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.LifeGoal
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update holds the partial-update fields for a life goal.
type Update struct {
	Title      *string
	Details    *string
	Achieved   *bool
	TargetDate *time.Time
}

func (s *Store) ApplyUpdate(ctx context.Context, id, userID primitive.ObjectID, u Update) (models.LifeGoal, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Title != nil && strings.TrimSpace(*u.Title) != "" {
		set["title"] = strings.TrimSpace(*u.Title)
	}
	if u.Details != nil {
		set["details"] = *u.Details
	}
	if u.Achieved != nil {
		set["achieved"] = *u.Achieved
	}
	if u.TargetDate != nil {
		set["target_date"] = *u.TargetDate
	}

	var g models.LifeGoal
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&g)
	if err != nil {
		return models.LifeGoal{}, err
	}
	return g, nil
}

func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
