// internal/app/store/userplans/userplanstore.go
package userplanstore

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
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection("user_plans")}
}

// CreateFromPlan snapshots a populated plan into a new UserPlan for the
// given user. Entries are flattened in traversal order (week, day,
// category, exercise) and TotalExercises is fixed at this moment; later
// edits to the plan do not change it. Repeated selection intentionally
// creates another document.
func (s *Store) CreateFromPlan(ctx context.Context, userID primitive.ObjectID, pp models.PopulatedPlan) (models.UserPlan, error) {
	entries := []models.UserPlanEntry{}
	for _, w := range pp.Weeks {
		for _, d := range w.Days {
			for _, c := range d.Categories {
				for _, e := range c.Exercises {
					entries = append(entries, models.UserPlanEntry{ExerciseID: e.ID})
				}
			}
		}
	}

	now := time.Now().UTC()
	up := models.UserPlan{
		ID:             primitive.NewObjectID(),
		UserID:         userID,
		PlanID:         pp.ID,
		Exercises:      entries,
		TotalExercises: len(entries),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := s.c.InsertOne(ctx, up); err != nil {
		return models.UserPlan{}, err
	}
	return up, nil
}

// SetCompletion flips one entry's completed flag and recomputes the
// counters in a single server-side pipeline update, so two concurrent
// toggles on the same document cannot lose a write. setData is stored
// verbatim when supplied. Returns mongo.ErrNoDocuments when no UserPlan
// of this user contains the exercise.
func (s *Store) SetCompletion(ctx context.Context, userID, exerciseID primitive.ObjectID, completed bool, setData bson.M) (models.UserPlan, error) {
	// On undo the date is overwritten with null rather than removed:
	// $mergeObjects skips missing fields, so "$$REMOVE" would leave the
	// stale date in place. Null decodes to a nil CompletionDate.
	merge := bson.M{"completed": completed}
	if completed {
		merge["completion_date"] = "$$NOW"
	} else {
		merge["completion_date"] = nil
	}
	if len(setData) > 0 {
		merge["set_data"] = setData
	}

	pipeline := mongo.Pipeline{
		// Flip the matching entry.
		{{Key: "$set", Value: bson.M{
			"exercises": bson.M{"$map": bson.M{
				"input": "$exercises",
				"as":    "e",
				"in": bson.M{"$cond": bson.A{
					bson.M{"$eq": bson.A{"$$e.exercise_id", exerciseID}},
					bson.M{"$mergeObjects": bson.A{"$$e", merge}},
					"$$e",
				}},
			}},
		}}},
		// Recount from the updated array (separate stage so it sees the
		// new entries).
		{{Key: "$set", Value: bson.M{
			"completed_exercises": bson.M{"$size": bson.M{"$filter": bson.M{
				"input": "$exercises",
				"as":    "e",
				"cond":  "$$e.completed",
			}}},
		}}},
		{{Key: "$set", Value: bson.M{
			"completion_percentage": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$total_exercises", 0}},
				bson.M{"$multiply": bson.A{
					bson.M{"$divide": bson.A{"$completed_exercises", "$total_exercises"}},
					100,
				}},
				0,
			}},
			"updated_at": "$$NOW",
		}}},
	}

	// FindOneAndUpdate pins the returned document to the one that was
	// updated; with duplicate selections of a plan a separate FindOne on
	// the same filter could read the sibling.
	filter := bson.M{"user_id": userID, "exercises.exercise_id": exerciseID}
	var up models.UserPlan
	err := s.c.FindOneAndUpdate(ctx, filter, pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&up)
	if err != nil {
		return models.UserPlan{}, err
	}
	return up, nil
}

// PopulatedEntry pairs a progress entry with its exercise document.
type PopulatedEntry struct {
	models.UserPlanEntry `bson:",inline"`
	Exercise             models.Exercise `json:"exercise"`
}

// PopulatedUserPlan is a UserPlan with entries resolved for rendering.
type PopulatedUserPlan struct {
	models.UserPlan `bson:",inline"`
	Entries         []PopulatedEntry `json:"entries"`
}

// ListForUser returns the user's plans, optionally filtered to one plan,
// each populated down to the exercise documents.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID, planID *primitive.ObjectID) ([]PopulatedUserPlan, error) {
	filter := bson.M{"user_id": userID}
	if planID != nil {
		filter["plan_id"] = *planID
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var plans []models.UserPlan
	if err := cur.All(ctx, &plans); err != nil {
		return nil, err
	}

	out := make([]PopulatedUserPlan, 0, len(plans))
	for _, up := range plans {
		pop, err := s.populate(ctx, up)
		if err != nil {
			return nil, err
		}
		out = append(out, pop)
	}
	return out, nil
}

func (s *Store) populate(ctx context.Context, up models.UserPlan) (PopulatedUserPlan, error) {
	ids := make([]primitive.ObjectID, 0, len(up.Exercises))
	for _, e := range up.Exercises {
		ids = append(ids, e.ExerciseID)
	}

	byID := map[primitive.ObjectID]models.Exercise{}
	if len(ids) > 0 {
		cur, err := s.db.Collection("exercises").Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return PopulatedUserPlan{}, err
		}
		var rows []models.Exercise
		if err := cur.All(ctx, &rows); err != nil {
			return PopulatedUserPlan{}, err
		}
		for _, e := range rows {
			byID[e.ID] = e
		}
	}

	pop := PopulatedUserPlan{UserPlan: up}
	for _, entry := range up.Exercises {
		pop.Entries = append(pop.Entries, PopulatedEntry{
			UserPlanEntry: entry,
			Exercise:      byID[entry.ExerciseID],
		})
	}
	return pop, nil
}
