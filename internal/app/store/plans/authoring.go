// internal/app/store/plans/authoring.go
package planstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/trainhub/internal/app/system/sanitize"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// The authoring input mirrors the nested JSON plan payload:
//
//	{ ...planFields, "weeks": [ { "week": 1 | [1,2,3],
//	    "days": [ { ...dayFields,
//	      "categories": [ { ...categoryFields,
//	        "exercises": [ {...} ] } ] } ] } ] }
//
// A "week" value that is a list of integers is compact notation for
// "these days repeat for each listed week number". Expansion shares the
// day documents: one Week document is inserted per number, all carrying
// the same day ID list, so editing a shared day shows through every
// expanded week.

// WeekNumbers accepts either a single integer or a list of integers.
type WeekNumbers []int

func (w *WeekNumbers) UnmarshalJSON(b []byte) error {
	var one int
	if err := json.Unmarshal(b, &one); err == nil {
		*w = WeekNumbers{one}
		return nil
	}
	var many []int
	if err := json.Unmarshal(b, &many); err == nil {
		*w = WeekNumbers(many)
		return nil
	}
	return errors.New(`"week" must be an integer or a list of integers`)
}

type ExerciseInput struct {
	Name        string `json:"name" validate:"required"`
	Sets        int    `json:"sets,omitempty"`
	Reps        int    `json:"reps,omitempty"`
	TimeSeconds int    `json:"time_seconds,omitempty"`
	RestSeconds int    `json:"rest_seconds,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
}

type CategoryInput struct {
	SubCategory        string          `json:"sub_category" validate:"required"`
	CircuitRestSeconds int             `json:"circuit_rest_seconds,omitempty"`
	CircuitReps        int             `json:"circuit_reps,omitempty"`
	Exercises          []ExerciseInput `json:"exercises"`
}

type DayInput struct {
	DayNumber  int             `json:"day_number"`
	Name       string          `json:"name" validate:"required"`
	BannerURL  string          `json:"banner_url,omitempty"`
	VideoURL   string          `json:"video_url,omitempty"`
	Categories []CategoryInput `json:"categories"`
}

type WeekInput struct {
	Week WeekNumbers `json:"week" validate:"required,min=1"`
	Days []DayInput  `json:"days"`
}

type TreeInput struct {
	Name         string      `json:"name" validate:"required"`
	Description  string      `json:"description,omitempty"`
	Location     string      `json:"location,omitempty"`
	Level        string      `json:"level,omitempty"`
	TrainingType string      `json:"training_type,omitempty"`
	AgeGroup     string      `json:"age_group,omitempty"`
	BannerURL    string      `json:"banner_url,omitempty"`
	Weeks        []WeekInput `json:"weeks" validate:"required,min=1"`
}

// CreateTree materializes the nested payload bottom-up: every exercise
// is persisted first, then categories referencing them, then days, then
// weeks, then the plan. Sibling inserts within a level run concurrently;
// a level starts only after the one below has fully completed. There is
// no multi-document transaction: a failure part-way aborts the call and
// can leave already-inserted lower-level documents without an owner.
func (s *Store) CreateTree(ctx context.Context, in TreeInput) (models.PopulatedPlan, error) {
	now := time.Now().UTC()

	var weekIDs []primitive.ObjectID
	var populatedWeeks []models.PopulatedWeek

	for wi, weekIn := range in.Weeks {
		if len(weekIn.Week) == 0 {
			return models.PopulatedPlan{}, fmt.Errorf("weeks[%d]: missing week number", wi)
		}

		// Materialize the shared days subtree once per week entry.
		days, err := s.createDays(ctx, now, weekIn.Days)
		if err != nil {
			return models.PopulatedPlan{}, err
		}
		dayIDs := make([]primitive.ObjectID, len(days))
		for i, d := range days {
			dayIDs[i] = d.ID
		}

		// One Week document per listed number, all referencing the same
		// day documents.
		for _, num := range weekIn.Week {
			week := models.Week{
				ID:         primitive.NewObjectID(),
				WeekNumber: num,
				DayIDs:     dayIDs,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if _, err := s.db.Collection("weeks").InsertOne(ctx, week); err != nil {
				return models.PopulatedPlan{}, fmt.Errorf("insert week %d: %w", num, err)
			}
			weekIDs = append(weekIDs, week.ID)
			populatedWeeks = append(populatedWeeks, models.PopulatedWeek{Week: week, Days: days})
		}
	}

	name := sanitize.Text(in.Name)
	plan := models.Plan{
		ID:           primitive.NewObjectID(),
		Name:         name,
		NameCI:       text.Fold(name),
		Description:  sanitize.Text(in.Description),
		Location:     in.Location,
		Level:        in.Level,
		TrainingType: in.TrainingType,
		AgeGroup:     in.AgeGroup,
		BannerURL:    in.BannerURL,
		WeekIDs:      weekIDs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := s.c.InsertOne(ctx, plan); err != nil {
		return models.PopulatedPlan{}, fmt.Errorf("insert plan: %w", err)
	}

	return models.PopulatedPlan{Plan: plan, Weeks: populatedWeeks}, nil
}

// createDays persists one week entry's day subtree, days in parallel,
// each day's categories already fully created beneath it.
func (s *Store) createDays(ctx context.Context, now time.Time, ins []DayInput) ([]models.PopulatedDay, error) {
	out := make([]models.PopulatedDay, len(ins))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range ins {
		g.Go(func() error {
			cats, err := s.createCategories(gctx, now, in.Categories)
			if err != nil {
				return err
			}
			catIDs := make([]primitive.ObjectID, len(cats))
			for j, c := range cats {
				catIDs[j] = c.ID
			}
			day := models.Day{
				ID:          primitive.NewObjectID(),
				DayNumber:   in.DayNumber,
				Name:        sanitize.Text(in.Name),
				BannerURL:   in.BannerURL,
				VideoURL:    in.VideoURL,
				CategoryIDs: catIDs,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := s.db.Collection("days").InsertOne(gctx, day); err != nil {
				return fmt.Errorf("insert day %q: %w", in.Name, err)
			}
			out[i] = models.PopulatedDay{Day: day, Categories: cats}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// createCategories persists one day's categories in parallel, each with
// its exercises created first.
func (s *Store) createCategories(ctx context.Context, now time.Time, ins []CategoryInput) ([]models.PopulatedCategory, error) {
	out := make([]models.PopulatedCategory, len(ins))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range ins {
		g.Go(func() error {
			exs, err := s.createExercises(gctx, now, in.Exercises)
			if err != nil {
				return err
			}
			exIDs := make([]primitive.ObjectID, len(exs))
			for j, e := range exs {
				exIDs[j] = e.ID
			}
			cat := models.Category{
				ID:                 primitive.NewObjectID(),
				SubCategory:        sanitize.Text(in.SubCategory),
				CircuitRestSeconds: in.CircuitRestSeconds,
				CircuitReps:        in.CircuitReps,
				ExerciseIDs:        exIDs,
				CreatedAt:          now,
				UpdatedAt:          now,
			}
			if _, err := s.db.Collection("categories").InsertOne(gctx, cat); err != nil {
				return fmt.Errorf("insert category %q: %w", in.SubCategory, err)
			}
			out[i] = models.PopulatedCategory{Category: cat, Exercises: exs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// createExercises persists one category's exercises in parallel,
// preserving input order in the result.
func (s *Store) createExercises(ctx context.Context, now time.Time, ins []ExerciseInput) ([]models.Exercise, error) {
	out := make([]models.Exercise, len(ins))
	g, gctx := errgroup.WithContext(ctx)
	for i, in := range ins {
		g.Go(func() error {
			e := models.Exercise{
				ID:          primitive.NewObjectID(),
				Name:        sanitize.Text(in.Name),
				Sets:        in.Sets,
				Reps:        in.Reps,
				TimeSeconds: in.TimeSeconds,
				RestSeconds: in.RestSeconds,
				ImageURL:    in.ImageURL,
				VideoURL:    in.VideoURL,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if _, err := s.db.Collection("exercises").InsertOne(gctx, e); err != nil {
				return fmt.Errorf("insert exercise %q: %w", in.Name, err)
			}
			out[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
