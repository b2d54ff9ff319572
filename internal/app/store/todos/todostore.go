// internal/app/store/todos/todostore.go
package todostore

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
	return &Store{c: db.Collection("todos")}
}

func (s *Store) Create(ctx context.Context, t models.Todo) (models.Todo, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Title = strings.TrimSpace(t.Title)
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

// ListForUser returns the user's todos, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Todo, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.Todo
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// Update holds the partial-update fields for a todo.
type Update struct {
	Title   *string
	Notes   *string
	Done    *bool
	DueDate *time.Time
}

// ApplyUpdate merges fields onto a todo owned by the user.
func (s *Store) ApplyUpdate(ctx context.Context, id, userID primitive.ObjectID, u Update) (models.Todo, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if u.Title != nil && strings.TrimSpace(*u.Title) != "" {
		set["title"] = strings.TrimSpace(*u.Title)
	}
	if u.Notes != nil {
		set["notes"] = *u.Notes
	}
	if u.Done != nil {
		set["done"] = *u.Done
	}
	if u.DueDate != nil {
		set["due_date"] = *u.DueDate
	}

	var t models.Todo
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "user_id": userID}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&t)
	if err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
