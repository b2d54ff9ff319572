// internal/app/store/gallery/gallerystore.go
package gallerystore

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
	return &Store{c: db.Collection("gallery_images")}
}

func (s *Store) Create(ctx context.Context, img models.GalleryImage) (models.GalleryImage, error) {
	img.ID = primitive.NewObjectID()
	img.CreatedAt = time.Now().UTC()
	if _, err := s.c.InsertOne(ctx, img); err != nil {
		return models.GalleryImage{}, err
	}
	return img, nil
}

// GetOwned loads an image only if it belongs to the user.
func (s *Store) GetOwned(ctx context.Context, id, userID primitive.ObjectID) (models.GalleryImage, error) {
	var img models.GalleryImage
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&img); err != nil {
		return models.GalleryImage{}, err
	}
	return img, nil
}

// ListForUser returns the user's gallery, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.GalleryImage, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.GalleryImage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
