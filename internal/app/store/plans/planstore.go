// internal/app/store/plans/planstore.go
package planstore

import (
	"context"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/app/system/search"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store covers the plans collection plus the tree operations that span
// the weeks/days/categories/exercises collections (authoring, populate).
type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("plans")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Plan, error) {
	var p models.Plan
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return models.Plan{}, err
	}
	return p, nil
}

// Filter holds the list predicates. Name uses the whitespace-insensitive
// substring policy; the metadata fields use the same permissive regex so
// "full body" matches "FullBody".
type Filter struct {
	Name         string
	Location     string
	Level        string
	TrainingType string
}

func (f Filter) query() bson.M {
	q := bson.M{}
	if re, ok := search.Regex(f.Name); ok {
		q["name"] = re
	}
	if re, ok := search.Regex(f.Location); ok {
		q["location"] = re
	}
	if re, ok := search.Regex(f.Level); ok {
		q["level"] = re
	}
	if re, ok := search.Regex(f.TrainingType); ok {
		q["training_type"] = re
	}
	return q
}

// List returns plans matching the filter, newest first.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Plan, error) {
	cur, err := s.c.Find(ctx, f.query(), options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.Plan
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update holds the partial-update fields for a plan.
type Update struct {
	Name         *string
	Description  *string
	Location     *string
	Level        *string
	TrainingType *string
	AgeGroup     *string
	BannerURL    *string
	WeekIDs      []primitive.ObjectID
}

func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Plan, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Name != nil {
		if name := sanitize.Text(*u.Name); name != "" {
			set["name"] = name
			set["name_ci"] = text.Fold(name)
		}
	}
	if u.Description != nil {
		set["description"] = sanitize.Text(*u.Description)
	}
	if u.Location != nil {
		set["location"] = *u.Location
	}
	if u.Level != nil {
		set["level"] = *u.Level
	}
	if u.TrainingType != nil {
		set["training_type"] = *u.TrainingType
	}
	if u.AgeGroup != nil {
		set["age_group"] = *u.AgeGroup
	}
	if u.BannerURL != nil {
		set["banner_url"] = *u.BannerURL
	}
	if u.WeekIDs != nil {
		set["week_ids"] = u.WeekIDs
	}

	var p models.Plan
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		return models.Plan{}, err
	}
	return p, nil
}

// Delete removes the plan document only. Weeks, days, categories, and
// exercises are reusable content and are intentionally not cascaded.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ToggleTrending flips the trending flag and returns the new value.
// Calling it twice restores the original state.
func (s *Store) ToggleTrending(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.toggleFlag(ctx, id, "trending")
}

// ToggleFeatured flips the featured flag and returns the new value.
func (s *Store) ToggleFeatured(ctx context.Context, id primitive.ObjectID) (bool, error) {
	return s.toggleFlag(ctx, id, "featured")
}

func (s *Store) toggleFlag(ctx context.Context, id primitive.ObjectID, field string) (bool, error) {
	// Single pipeline update so two concurrent toggles cannot both read
	// the same prior value.
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			field:        bson.M{"$not": "$" + field},
			"updated_at": "$$NOW",
		}}},
	}
	var p models.Plan
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&p)
	if err != nil {
		return false, err
	}
	if field == "featured" {
		return p.Featured, nil
	}
	return p.Trending, nil
}

// ListFlagged returns all plans with the given flag set, fully populated
// down to exercises.
func (s *Store) ListFlagged(ctx context.Context, field string) ([]models.PopulatedPlan, error) {
	cur, err := s.c.Find(ctx, bson.M{field: true})
	if err != nil {
		return nil, err
	}
	var rows []models.Plan
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	out := make([]models.PopulatedPlan, 0, len(rows))
	for _, p := range rows {
		pp, err := s.populate(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pp)
	}
	return out, nil
}
