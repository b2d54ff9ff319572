package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a verified user with the given email and password.
func (f *Fixtures) CreateUser(ctx context.Context, email, password string) models.User {
	f.t.Helper()
	return f.createUser(ctx, email, password, models.RoleUser, true)
}

// CreateAdmin inserts a verified admin user.
func (f *Fixtures) CreateAdmin(ctx context.Context, email, password string) models.User {
	f.t.Helper()
	return f.createUser(ctx, email, password, models.RoleAdmin, true)
}

// CreateUnverifiedUser inserts a user that has not completed OTP
// verification, with the given pending code.
func (f *Fixtures) CreateUnverifiedUser(ctx context.Context, email, password, otp string) models.User {
	f.t.Helper()
	u := f.createUser(ctx, email, password, models.RoleUser, false)
	expires := time.Now().UTC().Add(10 * time.Minute)
	u.OTP = otp
	u.OTPExpiresAt = &expires
	_, err := f.db.Collection("users").UpdateByID(ctx, u.ID, map[string]any{
		"$set": map[string]any{"otp": otp, "otp_expires_at": expires},
	})
	if err != nil {
		f.t.Fatalf("failed to set fixture otp: %v", err)
	}
	return u
}

func (f *Fixtures) createUser(ctx context.Context, email, password, role string, verified bool) models.User {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash fixture password: %v", err)
	}

	now := time.Now().UTC()
	name := "Test User"
	u := models.User{
		ID:           primitive.NewObjectID(),
		FullName:     name,
		FullNameCI:   text.Fold(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Verified:     verified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return u
}

// CreateExercise inserts a bare exercise.
func (f *Fixtures) CreateExercise(ctx context.Context, name string) models.Exercise {
	f.t.Helper()

	now := time.Now().UTC()
	e := models.Exercise{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Sets:      3,
		Reps:      10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("exercises").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test exercise: %v", err)
	}
	return e
}

// CreatePlanTree inserts a minimal fully-linked plan:
// one week, one day, one training category, and the given exercises.
func (f *Fixtures) CreatePlanTree(ctx context.Context, name string, exerciseNames ...string) models.Plan {
	f.t.Helper()

	now := time.Now().UTC()

	exerciseIDs := make([]primitive.ObjectID, 0, len(exerciseNames))
	for _, en := range exerciseNames {
		exerciseIDs = append(exerciseIDs, f.CreateExercise(ctx, en).ID)
	}

	cat := models.Category{
		ID:          primitive.NewObjectID(),
		SubCategory: models.CategoryTraining,
		ExerciseIDs: exerciseIDs,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("categories").InsertOne(ctx, cat); err != nil {
		f.t.Fatalf("failed to create test category: %v", err)
	}

	day := models.Day{
		ID:          primitive.NewObjectID(),
		DayNumber:   1,
		Name:        "Day One",
		CategoryIDs: []primitive.ObjectID{cat.ID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("days").InsertOne(ctx, day); err != nil {
		f.t.Fatalf("failed to create test day: %v", err)
	}

	week := models.Week{
		ID:         primitive.NewObjectID(),
		WeekNumber: 1,
		DayIDs:     []primitive.ObjectID{day.ID},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := f.db.Collection("weeks").InsertOne(ctx, week); err != nil {
		f.t.Fatalf("failed to create test week: %v", err)
	}

	plan := models.Plan{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Level:     "beginner",
		Location:  "home",
		WeekIDs:   []primitive.ObjectID{week.ID},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := f.db.Collection("plans").InsertOne(ctx, plan); err != nil {
		f.t.Fatalf("failed to create test plan: %v", err)
	}
	return plan
}

// CreateChallenge inserts a challenge for the user.
func (f *Fixtures) CreateChallenge(ctx context.Context, userID primitive.ObjectID, name string, durationDays int) models.Challenge {
	f.t.Helper()

	now := time.Now().UTC()
	ch := models.Challenge{
		ID:           primitive.NewObjectID(),
		UserID:       userID,
		Name:         name,
		TaskIDs:      []primitive.ObjectID{},
		DurationDays: durationDays,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := f.db.Collection("challenges").InsertOne(ctx, ch); err != nil {
		f.t.Fatalf("failed to create test challenge: %v", err)
	}
	return ch
}

// CreateTask inserts a task linked to the challenge.
func (f *Fixtures) CreateTask(ctx context.Context, challengeID, userID primitive.ObjectID, name string) models.Task {
	f.t.Helper()

	now := time.Now().UTC()
	task := models.Task{
		ID:          primitive.NewObjectID(),
		ChallengeID: challengeID,
		UserID:      userID,
		Name:        name,
		Progress:    []models.TaskProgress{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := f.db.Collection("tasks").InsertOne(ctx, task); err != nil {
		f.t.Fatalf("failed to create test task: %v", err)
	}
	if _, err := f.db.Collection("challenges").UpdateByID(ctx, challengeID, map[string]any{
		"$push": map[string]any{"task_ids": task.ID},
	}); err != nil {
		f.t.Fatalf("failed to link test task: %v", err)
	}
	return task
}
