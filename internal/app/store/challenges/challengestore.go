// internal/app/store/challenges/challengestore.go
package challengestore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/txn"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Store covers challenges plus the operations that touch the tasks
// collection (cascade delete) and sibling challenges (activation).
type Store struct {
	db  *mongo.Database
	c   *mongo.Collection
	log *zap.Logger
}

func New(db *mongo.Database, logger *zap.Logger) *Store {
	return &Store{db: db, c: db.Collection("challenges"), log: logger}
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Challenge, error) {
	var ch models.Challenge
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return models.Challenge{}, err
	}
	return ch, nil
}

// GetOwned loads a challenge only if it belongs to the given user.
func (s *Store) GetOwned(ctx context.Context, id, userID primitive.ObjectID) (models.Challenge, error) {
	var ch models.Challenge
	if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&ch); err != nil {
		return models.Challenge{}, err
	}
	return ch, nil
}

func (s *Store) Create(ctx context.Context, ch models.Challenge) (models.Challenge, error) {
	now := time.Now().UTC()
	ch.ID = primitive.NewObjectID()
	ch.Name = strings.TrimSpace(ch.Name)
	if ch.TaskIDs == nil {
		ch.TaskIDs = []primitive.ObjectID{}
	}
	ch.CreatedAt = now
	ch.UpdatedAt = now
	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		return models.Challenge{}, err
	}
	return ch, nil
}

// ListForUser returns the user's challenges, newest first.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Challenge, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	var rows []models.Challenge
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AppendTask adds a task reference to the challenge's ordered list.
func (s *Store) AppendTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"task_ids": taskID},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Activate makes this challenge the user's single active challenge:
// every other active challenge of the user is deactivated first, then
// this one is activated with start_date reset to now and end_date
// derived from its duration. Runs in a transaction where the deployment
// supports one.
func (s *Store) Activate(ctx context.Context, id, userID primitive.ObjectID) (models.Challenge, error) {
	var out models.Challenge
	err := txn.WithTransaction(ctx, s.db.Client(), s.log, func(ctx context.Context) error {
		now := time.Now().UTC()

		if _, err := s.c.UpdateMany(ctx,
			bson.M{"user_id": userID, "active": true, "_id": bson.M{"$ne": id}},
			bson.M{"$set": bson.M{"active": false, "updated_at": now}},
		); err != nil {
			return err
		}

		var ch models.Challenge
		if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&ch); err != nil {
			return err
		}
		end := now.AddDate(0, 0, ch.DurationDays)
		err := s.c.FindOneAndUpdate(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{
				"active":     true,
				"start_date": now,
				"end_date":   end,
				"updated_at": now,
			}},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&out)
		return err
	})
	if err != nil {
		return models.Challenge{}, err
	}
	return out, nil
}

// DeleteCascade removes the challenge's tasks first, then the challenge
// itself, so no orphaned task documents remain. Returns the number of
// tasks deleted. mongo.ErrNoDocuments when the challenge is missing or
// not owned by the user.
func (s *Store) DeleteCascade(ctx context.Context, id, userID primitive.ObjectID) (int64, error) {
	var tasksDeleted int64
	err := txn.WithTransaction(ctx, s.db.Client(), s.log, func(ctx context.Context) error {
		var ch models.Challenge
		if err := s.c.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&ch); err != nil {
			return err
		}

		res, err := s.db.Collection("tasks").DeleteMany(ctx, bson.M{"challenge_id": id})
		if err != nil {
			return err
		}
		tasksDeleted = res.DeletedCount

		if _, err := s.c.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tasksDeleted, nil
}
