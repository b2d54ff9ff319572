// internal/app/store/days/daystore.go
package daystore

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
	return &Store{c: db.Collection("days")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Day, error) {
	var d models.Day
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		return models.Day{}, err
	}
	return d, nil
}

func (s *Store) Create(ctx context.Context, d models.Day) (models.Day, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	if d.CategoryIDs == nil {
		d.CategoryIDs = []primitive.ObjectID{}
	}
	d.CreatedAt = now
	d.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Day{}, err
	}
	return d, nil
}

// Update holds the partial-update fields for a day.
type Update struct {
	DayNumber   *int
	Name        *string
	BannerURL   *string
	VideoURL    *string
	CategoryIDs []primitive.ObjectID
}

func (s *Store) ApplyUpdate(ctx context.Context, id primitive.ObjectID, u Update) (models.Day, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.DayNumber != nil {
		set["day_number"] = *u.DayNumber
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) != "" {
		set["name"] = strings.TrimSpace(*u.Name)
	}
	if u.BannerURL != nil {
		set["banner_url"] = *u.BannerURL
	}
	if u.VideoURL != nil {
		set["video_url"] = *u.VideoURL
	}
	if u.CategoryIDs != nil {
		set["category_ids"] = u.CategoryIDs
	}

	var d models.Day
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&d)
	if err != nil {
		return models.Day{}, err
	}
	return d, nil
}

func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// ByIDs loads days for the given IDs preserving the input order.
func (s *Store) ByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Day, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []models.Day
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Day, len(rows))
	for _, d := range rows {
		byID[d.ID] = d
	}
	out := make([]models.Day, 0, len(ids))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}
