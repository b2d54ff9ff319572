package taskstore_test

import (
	"errors"
	"testing"
	"time"

	taskstore "github.com/dalemusser/trainhub/internal/app/store/tasks"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func progressFor(task models.Task, date string) (models.TaskProgress, bool) {
	for _, p := range task.Progress {
		if p.Date == date {
			return p, true
		}
	}
	return models.TaskProgress{}, false
}

func TestStore_ToggleProgress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	ch := fx.CreateChallenge(ctx, userID, "Stretching", 14)
	task := fx.CreateTask(ctx, ch.ID, userID, "Morning stretch")

	today := time.Now().UTC().Format(models.TaskProgressDate)

	// First toggle appends a done entry.
	got, err := store.ToggleProgress(ctx, task.ID, userID, today)
	if err != nil {
		t.Fatalf("ToggleProgress failed: %v", err)
	}
	entry, ok := progressFor(got, today)
	if !ok {
		t.Fatal("expected a progress entry for today")
	}
	if !entry.Status {
		t.Error("first toggle: got status false, want true")
	}

	// Second toggle flips the same entry rather than appending.
	got, err = store.ToggleProgress(ctx, task.ID, userID, today)
	if err != nil {
		t.Fatalf("second ToggleProgress failed: %v", err)
	}
	if len(got.Progress) != 1 {
		t.Fatalf("progress entries: got %d, want 1", len(got.Progress))
	}
	entry, _ = progressFor(got, today)
	if entry.Status {
		t.Error("second toggle: got status true, want false")
	}

	// A different date gets its own entry.
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format(models.TaskProgressDate)
	got, err = store.ToggleProgress(ctx, task.ID, userID, yesterday)
	if err != nil {
		t.Fatalf("third ToggleProgress failed: %v", err)
	}
	if len(got.Progress) != 2 {
		t.Errorf("progress entries: got %d, want 2", len(got.Progress))
	}
}

func TestStore_ToggleProgress_NotOwned(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	ch := fx.CreateChallenge(ctx, owner, "Stretching", 14)
	task := fx.CreateTask(ctx, ch.ID, owner, "Morning stretch")

	today := time.Now().UTC().Format(models.TaskProgressDate)
	_, err := store.ToggleProgress(ctx, task.ID, primitive.NewObjectID(), today)
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected mongo.ErrNoDocuments, got %v", err)
	}
}

func TestStore_ListByChallenge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	userID := primitive.NewObjectID()
	ch := fx.CreateChallenge(ctx, userID, "Routine", 30)
	fx.CreateTask(ctx, ch.ID, userID, "First")
	fx.CreateTask(ctx, ch.ID, userID, "Second")

	rows, err := store.ListByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("ListByChallenge failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("tasks: got %d, want 2", len(rows))
	}
}

func TestStore_Delete_ScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	store := taskstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	ch := fx.CreateChallenge(ctx, owner, "Routine", 30)
	task := fx.CreateTask(ctx, ch.ID, owner, "First")

	n, err := store.Delete(ctx, task.ID, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if n != 0 {
		t.Errorf("foreign delete removed %d documents, want 0", n)
	}

	n, err = store.Delete(ctx, task.ID, owner)
	if err != nil {
		t.Fatalf("owner Delete failed: %v", err)
	}
	if n != 1 {
		t.Errorf("owner delete removed %d documents, want 1", n)
	}
}
