// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent:
CreateMany with a stable name and identical keys is a no-op when the
index already exists. Errors are aggregated so every problem is visible
and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database, log *zap.Logger) error {
	var problems []string

	ensure := func(name string, fn func(context.Context, *mongo.Database) error) {
		if err := fn(ctx, db); err != nil {
			problems = append(problems, name+": "+err.Error())
			return
		}
		log.Debug("indexes ensured", zap.String("collection", name))
	}

	ensure("users", ensureUsers)
	ensure("plans", ensurePlans)
	ensure("user_plans", ensureUserPlans)
	ensure("challenges", ensureChallenges)
	ensure("tasks", ensureTasks)
	ensure("todos", ensurePerUser("todos"))
	ensure("life_goals", ensurePerUser("life_goals"))
	ensure("gallery_images", ensurePerUser("gallery_images"))
	ensure("fitness_profiles", ensureFitnessProfiles)

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func named(name string) *options.IndexOptions {
	return options.Index().SetName(name)
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: named("uniq_email").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "full_name_ci", Value: 1}},
			Options: named("by_name_ci"),
		},
	})
	return err
}

func ensurePlans(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("plans").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: named("by_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "trending", Value: 1}},
			Options: named("by_trending"),
		},
		{
			Keys:    bson.D{{Key: "featured", Value: 1}},
			Options: named("by_featured"),
		},
	})
	return err
}

func ensureUserPlans(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("user_plans").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "plan_id", Value: 1}},
			Options: named("by_user_plan"),
		},
		{
			// Completion toggles locate the document by owner + entry.
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "exercises.exercise_id", Value: 1}},
			Options: named("by_user_exercise"),
		},
	})
	return err
}

func ensureChallenges(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("challenges").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "active", Value: 1}},
			Options: named("by_user_active"),
		},
	})
	return err
}

func ensureTasks(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("tasks").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "challenge_id", Value: 1}},
			Options: named("by_challenge"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: named("by_user"),
		},
	})
	return err
}

// ensurePerUser covers the simple per-user CRUD collections that only
// ever query by owner.
func ensurePerUser(coll string) func(context.Context, *mongo.Database) error {
	return func(ctx context.Context, db *mongo.Database) error {
		_, err := db.Collection(coll).Indexes().CreateMany(ctx, []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: named("by_user_created"),
			},
		})
		return err
	}
}

func ensureFitnessProfiles(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("fitness_profiles").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: named("uniq_user").SetUnique(true),
		},
	})
	return err
}
