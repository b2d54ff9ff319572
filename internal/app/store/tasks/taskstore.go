// internal/app/store/tasks/taskstore.go
package taskstore

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
	return &Store{c: db.Collection("tasks")}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	var t models.Task
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func (s *Store) Create(ctx context.Context, t models.Task) (models.Task, error) {
	now := time.Now().UTC()
	t.ID = primitive.NewObjectID()
	t.Name = strings.TrimSpace(t.Name)
	if t.Progress == nil {
		t.Progress = []models.TaskProgress{}
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, t); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// ListByChallenge returns the tasks of a challenge in creation order.
func (s *Store) ListByChallenge(ctx context.Context, challengeID primitive.ObjectID) ([]models.Task, error) {
	cur, err := s.c.Find(ctx, bson.M{"challenge_id": challengeID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.Task
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ToggleProgress flips the task's progress entry for the given date
// string, appending {date, true} when no entry exists yet. Two calls
// with the same date restore the original state. The flip-or-append is
// a single pipeline update so concurrent toggles cannot duplicate the
// date entry. Returns the updated task; mongo.ErrNoDocuments when the
// task is missing or not owned by the user.
func (s *Store) ToggleProgress(ctx context.Context, id, userID primitive.ObjectID, date string) (models.Task, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"progress": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{date, "$progress.date"}},
				// Entry exists: flip its status.
				bson.M{"$map": bson.M{
					"input": "$progress",
					"as":    "p",
					"in": bson.M{"$cond": bson.A{
						bson.M{"$eq": bson.A{"$$p.date", date}},
						bson.M{"$mergeObjects": bson.A{"$$p", bson.M{"status": bson.M{"$not": "$$p.status"}}}},
						"$$p",
					}},
				}},
				// First toggle today: append with status=true.
				bson.M{"$concatArrays": bson.A{
					"$progress",
					bson.A{bson.M{"date": date, "status": true}},
				}},
			}},
			"updated_at": "$$NOW",
		}}},
	}

	var t models.Task
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "user_id": userID},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// Delete removes a task owned by the user. Returns the number deleted.
func (s *Store) Delete(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
