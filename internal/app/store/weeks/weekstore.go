// internal/app/store/weeks/weekstore.go
package weekstore

import (
	"context"
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
	return &Store{c: db.Collection("weeks")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Week, error) {
	var w models.Week
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&w); err != nil {
		return models.Week{}, err
	}
	return w, nil
}

func (s *Store) Create(ctx context.Context, w models.Week) (models.Week, error) {
	now := time.Now().UTC()
	w.ID = primitive.NewObjectID()
	if w.DayIDs == nil {
		w.DayIDs = []primitive.ObjectID{}
	}
	w.CreatedAt = now
	w.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, w); err != nil {
		return models.Week{}, err
	}
	return w, nil
}

// Update holds the partial-update fields for a week.
type Update struct {
	WeekNumber *int
	DayIDs     []primitive.ObjectID
}

func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Week, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.WeekNumber != nil {
		set["week_number"] = *u.WeekNumber
	}
	if u.DayIDs != nil {
		set["day_ids"] = u.DayIDs
	}

	var w models.Week
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&w)
	if err != nil {
		return models.Week{}, err
	}
	return w, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ByIDs loads weeks for the given IDs preserving the input order.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Week, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []models.Week
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Week, len(rows))
	for _, w := range rows {
		byID[w.ID] = w
	}
	out := make([]models.Week, 0, len(ids))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}
