// internal/app/store/exercises/exercisestore.go
package exercisestore

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
	return &Store{c: db.Collection("exercises")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Exercise, error) {
	var e models.Exercise
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

func (s *Store) Create(ctx context.Context, e models.Exercise) (models.Exercise, error) {
	now := time.Now().UTC()
	e.ID = primitive.NewObjectID()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// Update holds the partial-update fields for an exercise. Nil pointers
// leave the stored value untouched.
type Update struct {
	Name        *string
	Sets        *int
	Reps        *int
	TimeSeconds *int
	RestSeconds *int
	ImageURL    *string
	VideoURL    *string
}

// ApplyUpdate merges the supplied fields and returns the updated
// document. Returns mongo.ErrNoDocuments when the exercise is missing.
func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Exercise, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		set["name"] = strings.TrimSpace(*u.Name)
	}
	if u.Sets != nil {
		set["sets"] = *u.Sets
	}
	if u.Reps != nil {
		set["reps"] = *u.Reps
	}
	if u.TimeSeconds != nil {
		set["time_seconds"] = *u.TimeSeconds
	}
	if u.RestSeconds != nil {
		set["rest_seconds"] = *u.RestSeconds
	}
	if u.ImageURL != nil {
		set["image_url"] = *u.ImageURL
	}
	if u.VideoURL != nil {
		set["video_url"] = *u.VideoURL
	}

	var e models.Exercise
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&e)
	if err != nil {
		return models.Exercise{}, err
	}
	return e, nil
}

// Delete removes an exercise by ID. Returns the number of documents
// deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ByIDs loads exercises for the given IDs preserving the input order.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Exercise, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []models.Exercise
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Exercise, len(rows))
	for _, e := range rows {
		byID[e.ID] = e
	}
	out := make([]models.Exercise, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}
