package userplanstore_test

import (
	"errors"
	"testing"

	planstore "github.com/dalemusser/trainhub/internal/app/store/plans"
	userplanstore "github.com/dalemusser/trainhub/internal/app/store/userplans"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateFromPlan(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	plans := planstore.New(db)
	store := userplanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	plan := fx.CreatePlanTree(ctx, "Leg Day Plan", "Squats", "Lunges")
	populated, err := plans.GetPopulated(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetPopulated failed: %v", err)
	}

	userID := primitive.NewObjectID()
	up, err := store.CreateFromPlan(ctx, userID, populated)
	if err != nil {
		t.Fatalf("CreateFromPlan failed: %v", err)
	}

	if up.TotalExercises != 2 {
		t.Errorf("TotalExercises: got %d, want 2", up.TotalExercises)
	}
	if up.CompletedExercises != 0 {
		t.Errorf("CompletedExercises: got %d, want 0", up.CompletedExercises)
	}
	if up.CompletionPercentage != 0 {
		t.Errorf("CompletionPercentage: got %v, want 0", up.CompletionPercentage)
	}
	for _, e := range up.Exercises {
		if e.Completed {
			t.Error("entries must start incomplete")
		}
	}
}

func TestStore_SetCompletion(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	plans := planstore.New(db)
	store := userplanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	plan := fx.CreatePlanTree(ctx, "Leg Day Plan", "Squats", "Lunges")
	populated, err := plans.GetPopulated(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetPopulated failed: %v", err)
	}
	userID := primitive.NewObjectID()
	if _, err := store.CreateFromPlan(ctx, userID, populated); err != nil {
		t.Fatalf("CreateFromPlan failed: %v", err)
	}
	exerciseID := populated.Weeks[0].Days[0].Categories[0].Exercises[0].ID

	up, err := store.SetCompletion(ctx, userID, exerciseID, true, bson.M{"weight_kg": 60})
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if up.CompletedExercises != 1 {
		t.Errorf("CompletedExercises: got %d, want 1", up.CompletedExercises)
	}
	if up.CompletionPercentage != 50 {
		t.Errorf("CompletionPercentage: got %v, want 50", up.CompletionPercentage)
	}

	found := false
	for _, e := range up.Exercises {
		if e.ExerciseID != exerciseID {
			continue
		}
		found = true
		if !e.Completed {
			t.Error("entry should be completed")
		}
		if e.CompletionDate == nil {
			t.Error("completion date should be set")
		}
		if len(e.SetData) == 0 {
			t.Error("set data should be stored")
		}
	}
	if !found {
		t.Fatal("toggled entry missing from result")
	}

	// Un-complete drops the date and recomputes.
	up, err = store.SetCompletion(ctx, userID, exerciseID, false, nil)
	if err != nil {
		t.Fatalf("second SetCompletion failed: %v", err)
	}
	if up.CompletedExercises != 0 || up.CompletionPercentage != 0 {
		t.Errorf("after undo: completed=%d pct=%v, want 0/0", up.CompletedExercises, up.CompletionPercentage)
	}
	for _, e := range up.Exercises {
		if e.ExerciseID == exerciseID && e.CompletionDate != nil {
			t.Error("completion date should be cleared on undo")
		}
	}
}

func TestStore_SetCompletion_UnknownExercise(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userplanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.SetCompletion(ctx, primitive.NewObjectID(), primitive.NewObjectID(), true, nil)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_SetCompletion_DuplicateSelection(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	plans := planstore.New(db)
	store := userplanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	plan := fx.CreatePlanTree(ctx, "Leg Day Plan", "Squats", "Lunges")
	populated, err := plans.GetPopulated(ctx, plan.ID)
	if err != nil {
		t.Fatalf("GetPopulated failed: %v", err)
	}
	userID := primitive.NewObjectID()
	// Selecting the same plan twice is allowed and makes two documents.
	for i := 0; i < 2; i++ {
		if _, err := store.CreateFromPlan(ctx, userID, populated); err != nil {
			t.Fatalf("CreateFromPlan %d failed: %v", i, err)
		}
	}
	exerciseID := populated.Weeks[0].Days[0].Categories[0].Exercises[0].ID

	// The returned document must be the one that took the update, not
	// an arbitrary sibling matching the same filter.
	up, err := store.SetCompletion(ctx, userID, exerciseID, true, nil)
	if err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if up.CompletedExercises != 1 {
		t.Errorf("returned CompletedExercises: got %d, want 1", up.CompletedExercises)
	}

	n, err := db.Collection("user_plans").CountDocuments(ctx, bson.M{
		"user_id":             userID,
		"completed_exercises": 1,
	})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("documents updated: got %d, want exactly 1", n)
	}
}

func TestStore_ListForUser_PlanFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	plans := planstore.New(db)
	store := userplanstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	for _, name := range []string{"Plan A", "Plan B"} {
		plan := fx.CreatePlanTree(ctx, name, "Squats")
		populated, err := plans.GetPopulated(ctx, plan.ID)
		if err != nil {
			t.Fatalf("GetPopulated failed: %v", err)
		}
		if _, err := store.CreateFromPlan(ctx, userID, populated); err != nil {
			t.Fatalf("CreateFromPlan failed: %v", err)
		}
	}

	all, err := store.ListForUser(ctx, userID, nil)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("ListForUser: got %d, want 2", len(all))
	}
	if len(all[0].Entries) != 1 || all[0].Entries[0].Exercise.Name != "Squats" {
		t.Error("entries should resolve their exercise documents")
	}

	one, err := store.ListForUser(ctx, userID, &all[0].PlanID)
	if err != nil {
		t.Fatalf("filtered ListForUser failed: %v", err)
	}
	if len(one) != 1 {
		t.Errorf("filtered ListForUser: got %d, want 1", len(one))
	}
}
