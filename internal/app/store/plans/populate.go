// internal/app/store/plans/populate.go
package planstore

import (
	"context"

	"github.com/dalemusser/trainhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetPopulated loads a plan with every level of the tree resolved, in
// the plan's stored traversal order.
func (s *Store) GetPopulated(ctx context.Context, id primitive.ObjectID) (models.PopulatedPlan, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return models.PopulatedPlan{}, err
	}
	return s.populate(ctx, p)
}

// populate resolves the whole subtree of a plan with one $in query per
// collection, then reassembles the ordered structure in memory.
func (s *Store) populate(ctx context.Context, p models.Plan) (models.PopulatedPlan, error) {
	weeks, err := loadOrdered[models.Week](ctx, s.db.Collection("weeks"), p.WeekIDs)
	if err != nil {
		return models.PopulatedPlan{}, err
	}

	var dayIDs []primitive.ObjectID
	for _, w := range weeks {
		dayIDs = append(dayIDs, w.DayIDs...)
	}
	days, err := loadMap[models.Day](ctx, s.db.Collection("days"), dayIDs)
	if err != nil {
		return models.PopulatedPlan{}, err
	}

	var catIDs []primitive.ObjectID
	for _, d := range days {
		catIDs = append(catIDs, d.CategoryIDs...)
	}
	cats, err := loadMap[models.Category](ctx, s.db.Collection("categories"), catIDs)
	if err != nil {
		return models.PopulatedPlan{}, err
	}

	var exIDs []primitive.ObjectID
	for _, c := range cats {
		exIDs = append(exIDs, c.ExerciseIDs...)
	}
	exs, err := loadMap[models.Exercise](ctx, s.db.Collection("exercises"), exIDs)
	if err != nil {
		return models.PopulatedPlan{}, err
	}

	pp := models.PopulatedPlan{Plan: p}
	for _, w := range weeks {
		pw := models.PopulatedWeek{Week: w}
		for _, dayID := range w.DayIDs {
			d, ok := days[dayID]
			if !ok {
				continue // dangling reference, skip
			}
			pd := models.PopulatedDay{Day: d}
			for _, catID := range d.CategoryIDs {
				c, ok := cats[catID]
				if !ok {
					continue
				}
				pc := models.PopulatedCategory{Category: c}
				for _, exID := range c.ExerciseIDs {
					if e, ok := exs[exID]; ok {
						pc.Exercises = append(pc.Exercises, e)
					}
				}
				pd.Categories = append(pd.Categories, pc)
			}
			pw.Days = append(pw.Days, pd)
		}
		pp.Weeks = append(pp.Weeks, pw)
	}
	return pp, nil
}

type hasID interface {
	models.Week | models.Day | models.Category | models.Exercise
}

// loadOrdered fetches documents by ID and returns them in input order.
func loadOrdered[T hasID](ctx context.Context, c *mongo.Collection, ids []primitive.ObjectID) ([]T, error) {
	m, err := loadMap[T](ctx, c, ids)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if v, ok := m[id]; ok {
			out = append(out, v)
		}
	}
	return out, nil
}

// loadMap fetches documents by ID into a map keyed by _id.
func loadMap[T hasID](ctx context.Context, c *mongo.Collection, ids []primitive.ObjectID) (map[primitive.ObjectID]T, error) {
	out := make(map[primitive.ObjectID]T, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	var rows []T
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[idOf(r)] = r
	}
	return out, nil
}

func idOf[T hasID](v T) primitive.ObjectID {
	switch t := any(v).(type) {
	case models.Week:
		return t.ID
	case models.Day:
		return t.ID
	case models.Category:
		return t.ID
	case models.Exercise:
		return t.ID
	}
	return primitive.NilObjectID
}
