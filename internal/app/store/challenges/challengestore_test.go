package challengestore_test

import (
	"errors"
	"testing"

	challengestore "github.com/dalemusser/trainhub/internal/app/store/challenges"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func TestStore_Activate_SingleActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := challengestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	first := fx.CreateChallenge(ctx, userID, "30 Day Pushups", 30)
	second := fx.CreateChallenge(ctx, userID, "Hydration", 14)

	activated, err := store.Activate(ctx, first.ID, userID)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if !activated.Active {
		t.Fatal("challenge should be active")
	}
	if activated.StartDate == nil || activated.EndDate == nil {
		t.Fatal("activation must set start and end dates")
	}
	gotDays := int(activated.EndDate.Sub(*activated.StartDate).Hours() / 24)
	if gotDays != 30 {
		t.Errorf("duration window: got %d days, want 30", gotDays)
	}

	// Activating the second deactivates the first.
	if _, err := store.Activate(ctx, second.ID, userID); err != nil {
		t.Fatalf("second Activate failed: %v", err)
	}
	n, err := db.Collection("challenges").CountDocuments(ctx, bson.M{"user_id": userID, "active": true})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("active challenges: got %d, want 1", n)
	}
	reloaded, err := store.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if reloaded.Active {
		t.Error("first challenge should have been deactivated")
	}
}

func TestStore_Activate_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := challengestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChallenge(ctx, primitive.NewObjectID(), "Not Yours", 7)

	_, err := store.Activate(ctx, ch.ID, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_DeleteCascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := challengestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	ch := fx.CreateChallenge(ctx, userID, "Cold Showers", 21)
	fx.CreateTask(ctx, ch.ID, userID, "Morning shower")
	fx.CreateTask(ctx, ch.ID, userID, "Evening shower")

	// A task on another challenge must survive.
	other := fx.CreateChallenge(ctx, userID, "Reading", 21)
	fx.CreateTask(ctx, other.ID, userID, "Read 10 pages")

	tasksDeleted, err := store.DeleteCascade(ctx, ch.ID, userID)
	if err != nil {
		t.Fatalf("DeleteCascade failed: %v", err)
	}
	if tasksDeleted != 2 {
		t.Errorf("tasksDeleted: got %d, want 2", tasksDeleted)
	}

	if _, err := store.GetByID(ctx, ch.ID); !errors.Is(err, mongo.ErrNoDocuments) {
		t.Errorf("challenge should be gone, got err=%v", err)
	}
	n, err := db.Collection("tasks").CountDocuments(ctx, bson.M{})
	if err != nil {
		t.Fatalf("CountDocuments failed: %v", err)
	}
	if n != 1 {
		t.Errorf("surviving tasks: got %d, want 1", n)
	}
}

func TestStore_DeleteCascade_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := challengestore.New(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ch := fx.CreateChallenge(ctx, primitive.NewObjectID(), "Not Yours", 7)

	_, err := store.DeleteCascade(ctx, ch.ID, primitive.NewObjectID())
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}
