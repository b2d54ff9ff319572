// internal/domain/models/catalog.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// The workout catalog is a four-level tree of reusable content, each
// level a separate collection linked by ObjectID references:
//
//	Plan -> Week -> Day -> Category -> Exercise
//
// The tree is authored in one call (see store/plans) but each level also
// supports independent admin CRUD.

// Exercise is the leaf of the catalog tree. It belongs to exactly one
// Category via the category's ordered exercise ID list.
type Exercise struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name string             `bson:"name" json:"name"`

	Sets        int    `bson:"sets,omitempty" json:"sets,omitempty"`
	Reps        int    `bson:"reps,omitempty" json:"reps,omitempty"`
	TimeSeconds int    `bson:"time_seconds,omitempty" json:"time_seconds,omitempty"`
	RestSeconds int    `bson:"rest_seconds,omitempty" json:"rest_seconds,omitempty"`
	ImageURL    string `bson:"image_url,omitempty" json:"image_url,omitempty"`
	VideoURL    string `bson:"video_url,omitempty" json:"video_url,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Category sub-category labels.
const (
	CategoryWarmUp   = "warm-up"
	CategoryTraining = "training"
	CategoryCircuit  = "circuit"
	CategoryCoolDown = "cool-down"
)

// Category groups an ordered list of exercises inside a day.
type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SubCategory string             `bson:"sub_category" json:"sub_category"` // warm-up | training | circuit | cool-down

	// Circuit-only parameters.
	CircuitRestSeconds int `bson:"circuit_rest_seconds,omitempty" json:"circuit_rest_seconds,omitempty"`
	CircuitReps        int `bson:"circuit_reps,omitempty" json:"circuit_reps,omitempty"`

	ExerciseIDs []primitive.ObjectID `bson:"exercise_ids" json:"exercise_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Day is a single training day inside a week.
type Day struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DayNumber int                `bson:"day_number" json:"day_number"`
	Name      string             `bson:"name" json:"name"`
	BannerURL string             `bson:"banner_url,omitempty" json:"banner_url,omitempty"`
	VideoURL  string             `bson:"video_url,omitempty" json:"video_url,omitempty"`

	CategoryIDs []primitive.ObjectID `bson:"category_ids" json:"category_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Week holds an ordered list of days. Weeks authored with the compact
// "week": [1,2,3] notation share the same Day documents; only the Week
// documents are distinct.
type Week struct {
	ID         primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	WeekNumber int                  `bson:"week_number" json:"week_number"`
	DayIDs     []primitive.ObjectID `bson:"day_ids" json:"day_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Plan is the root of the catalog tree.
type Plan struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	// Targeting metadata.
	Location     string `bson:"location,omitempty" json:"location,omitempty"` // home | gym
	Level        string `bson:"level,omitempty" json:"level,omitempty"`       // beginner | intermediate | advanced
	TrainingType string `bson:"training_type,omitempty" json:"training_type,omitempty"`
	AgeGroup     string `bson:"age_group,omitempty" json:"age_group,omitempty"`

	BannerURL string `bson:"banner_url,omitempty" json:"banner_url,omitempty"`

	WeekIDs []primitive.ObjectID `bson:"week_ids" json:"week_ids"`

	Trending bool `bson:"trending" json:"trending"`
	Featured bool `bson:"featured" json:"featured"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Populated views mirror the stored documents with child references
// resolved. They are what plan fetch endpoints return when populate is
// requested.

type PopulatedCategory struct {
	Category  `bson:",inline"`
	Exercises []Exercise `bson:"exercises" json:"exercises"`
}

type PopulatedDay struct {
	Day        `bson:",inline"`
	Categories []PopulatedCategory `bson:"categories" json:"categories"`
}

type PopulatedWeek struct {
	Week `bson:",inline"`
	Days []PopulatedDay `bson:"days" json:"days"`
}

type PopulatedPlan struct {
	Plan  `bson:",inline"`
	Weeks []PopulatedWeek `bson:"weeks" json:"weeks"`
}

// ExerciseCount sums exercises across the whole populated tree. It is the
// value snapshotted onto UserPlan.TotalExercises at selection time.
func (p *PopulatedPlan) ExerciseCount() int {
	n := 0
	for _, w := range p.Weeks {
		for _, d := range w.Days {
			for _, c := range d.Categories {
				n += len(c.Exercises)
			}
		}
	}
	return n
}
