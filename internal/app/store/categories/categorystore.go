// internal/app/store/categories/categorystore.go
package categorystore

import (
	"context"
	"errors"
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

var errBadSubCategory = errors.New(`sub_category must be "warm-up", "training", "circuit", or "cool-down"`)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("categories")}
}

func validSubCategory(v string) bool {
	switch v {
	case models.CategoryWarmUp, models.CategoryTraining, models.CategoryCircuit, models.CategoryCoolDown:
		return true
	}
	return false
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Category, error) {
	var c models.Category
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) Create(ctx context.Context, c models.Category) (models.Category, error) {
	if !validSubCategory(c.SubCategory) {
		return models.Category{}, errBadSubCategory
	}
	now := time.Now().UTC()
	c.ID = primitive.NewObjectID()
	if c.ExerciseIDs == nil {
		c.ExerciseIDs = []primitive.ObjectID{}
	}
	c.CreatedAt = now
	c.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, c); err != nil {
		return models.Category{}, err
	}
	return c, nil
}

// Update holds the partial-update fields for a category.
type Update struct {
	SubCategory        *string
	CircuitRestSeconds *int
	CircuitReps        *int
	ExerciseIDs        []primitive.ObjectID
}

func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Category, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.SubCategory != nil {
		if !validSubCategory(*u.SubCategory) {
			return models.Category{}, errBadSubCategory
		}
		set["sub_category"] = *u.SubCategory
	}
	if u.CircuitRestSeconds != nil {
		set["circuit_rest_seconds"] = *u.CircuitRestSeconds
	}
	if u.CircuitReps != nil {
		set["circuit_reps"] = *u.CircuitReps
	}
	if u.ExerciseIDs != nil {
		set["exercise_ids"] = u.ExerciseIDs
	}

	var c models.Category
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&c)
	if err != nil {
		return models.Category{}, err
	}
	return c, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ByIDs loads categories for the given IDs preserving the input order.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Category, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []models.Category
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Category, len(rows))
	for _, c := range rows {
		byID[c.ID] = c
	}
	out := make([]models.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}
