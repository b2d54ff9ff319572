package planstore_test

import (
	"encoding/json"
	"testing"

	planstore "github.com/dalemusser/trainhub/internal/app/store/plans"
	"github.com/dalemusser/trainhub/internal/testutil"
)

// smallTree returns a nested plan input: weeks 1-3 share one subtree,
// week 4 has its own.
func smallTree() planstore.TreeInput {
	return planstore.TreeInput{
		Name:     "Full Body Starter",
		Location: "home",
		Level:    "beginner",
		Weeks: []planstore.WeekInput{
			{
				Week: planstore.WeekNumbers{1, 2, 3},
				Days: []planstore.DayInput{
					{
						DayNumber: 1,
						Name:      "Push Day",
						Categories: []planstore.CategoryInput{
							{
								SubCategory: "warm-up",
								Exercises:   []planstore.ExerciseInput{{Name: "Jumping Jacks", TimeSeconds: 60}},
							},
							{
								SubCategory: "training",
								Exercises: []planstore.ExerciseInput{
									{Name: "Push Ups", Sets: 3, Reps: 12},
									{Name: "Dips", Sets: 3, Reps: 8},
								},
							},
						},
					},
				},
			},
			{
				Week: planstore.WeekNumbers{4},
				Days: []planstore.DayInput{
					{
						DayNumber: 1,
						Name:      "Deload",
						Categories: []planstore.CategoryInput{
							{
								SubCategory: "cool-down",
								Exercises:   []planstore.ExerciseInput{{Name: "Stretching", TimeSeconds: 300}},
							},
						},
					},
				},
			},
		},
	}
}

func TestWeekNumbers_UnmarshalJSON(t *testing.T) {
	var single planstore.WeekNumbers
	if err := json.Unmarshal([]byte(`2`), &single); err != nil {
		t.Fatalf("unmarshal int failed: %v", err)
	}
	if len(single) != 1 || single[0] != 2 {
		t.Errorf("got %v, want [2]", single)
	}

	var many planstore.WeekNumbers
	if err := json.Unmarshal([]byte(`[1,2,3]`), &many); err != nil {
		t.Fatalf("unmarshal list failed: %v", err)
	}
	if len(many) != 3 {
		t.Errorf("got %v, want three entries", many)
	}

	var bad planstore.WeekNumbers
	if err := json.Unmarshal([]byte(`"two"`), &bad); err == nil {
		t.Error("expected error for non-numeric week")
	}
}

func TestStore_CreateTree(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateTree(ctx, smallTree())
	if err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}

	// Weeks 1-3 expand to three documents plus week 4.
	if len(created.WeekIDs) != 4 {
		t.Fatalf("WeekIDs: got %d, want 4", len(created.WeekIDs))
	}
	if len(created.Weeks) != 4 {
		t.Fatalf("Weeks: got %d, want 4", len(created.Weeks))
	}

	// Expanded weeks share the same Day documents by reference.
	if created.Weeks[0].DayIDs[0] != created.Weeks[1].DayIDs[0] {
		t.Error("expected weeks 1 and 2 to share day documents")
	}
	if created.Weeks[0].DayIDs[0] == created.Weeks[3].DayIDs[0] {
		t.Error("expected week 4 to have its own day documents")
	}

	// 3 weeks x 3 exercises + 1 week x 1 exercise.
	if n := created.ExerciseCount(); n != 10 {
		t.Errorf("ExerciseCount: got %d, want 10", n)
	}

	// Round-trip through populate matches the in-memory result.
	loaded, err := store.GetPopulated(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetPopulated failed: %v", err)
	}
	if loaded.ExerciseCount() != created.ExerciseCount() {
		t.Errorf("populated count %d != created count %d", loaded.ExerciseCount(), created.ExerciseCount())
	}
	if loaded.Weeks[0].Days[0].Categories[0].SubCategory != "warm-up" {
		t.Errorf("category order lost: got %q", loaded.Weeks[0].Days[0].Categories[0].SubCategory)
	}
	if got := loaded.Weeks[0].Days[0].Categories[1].Exercises[0].Name; got != "Push Ups" {
		t.Errorf("exercise order lost: got %q", got)
	}
}

func TestStore_CreateTree_StripsMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	in := planstore.TreeInput{
		Name:        `<b>Full Body</b> Starter`,
		Description: `get strong <script>alert(1)</script>fast`,
		Weeks: []planstore.WeekInput{
			{
				Week: planstore.WeekNumbers{1},
				Days: []planstore.DayInput{
					{
						DayNumber: 1,
						Name:      `Push <i>Day</i>`,
						Categories: []planstore.CategoryInput{
							{
								SubCategory: `<u>warm-up</u>`,
								Exercises:   []planstore.ExerciseInput{{Name: `<img src=x>Push Ups`, Sets: 3, Reps: 12}},
							},
						},
					},
				},
			},
		},
	}

	pp, err := store.CreateTree(ctx, in)
	if err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}
	if pp.Name != "Full Body Starter" {
		t.Errorf("plan name: got %q", pp.Name)
	}
	if pp.Description != "get strong fast" {
		t.Errorf("plan description: got %q", pp.Description)
	}
	day := pp.Weeks[0].Days[0]
	if day.Name != "Push Day" {
		t.Errorf("day name: got %q", day.Name)
	}
	if day.Categories[0].SubCategory != "warm-up" {
		t.Errorf("sub category: got %q", day.Categories[0].SubCategory)
	}
	if day.Categories[0].Exercises[0].Name != "Push Ups" {
		t.Errorf("exercise name: got %q", day.Categories[0].Exercises[0].Name)
	}
}

func TestStore_ApplyUpdate_StripsMarkup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	pp, err := store.CreateTree(ctx, smallTree())
	if err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}

	name := `<b>Renamed</b> Plan`
	desc := `now with <script>evil()</script>less`
	got, err := store.ApplyUpdate(ctx, pp.ID, planstore.Update{Name: &name, Description: &desc})
	if err != nil {
		t.Fatalf("ApplyUpdate failed: %v", err)
	}
	if got.Name != "Renamed Plan" {
		t.Errorf("name: got %q", got.Name)
	}
	if got.Description != "now with less" {
		t.Errorf("description: got %q", got.Description)
	}
}

func TestStore_List_FilterIgnoresWhitespaceAndCase(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.CreateTree(ctx, smallTree()); err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}

	rows, err := store.List(ctx, planstore.Filter{Name: "fullbody"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("List: got %d plans, want 1 for collapsed-whitespace match", len(rows))
	}

	rows, err = store.List(ctx, planstore.Filter{Name: "cardio blast"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("List: got %d plans, want 0 for non-matching name", len(rows))
	}
}

func TestStore_ToggleTrending(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := planstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateTree(ctx, smallTree())
	if err != nil {
		t.Fatalf("CreateTree failed: %v", err)
	}

	on, err := store.ToggleTrending(ctx, created.ID)
	if err != nil {
		t.Fatalf("ToggleTrending failed: %v", err)
	}
	if !on {
		t.Error("first toggle: got false, want true")
	}

	off, err := store.ToggleTrending(ctx, created.ID)
	if err != nil {
		t.Fatalf("second ToggleTrending failed: %v", err)
	}
	if off {
		t.Error("second toggle: got true, want false")
	}

	flagged, err := store.ListFlagged(ctx, "trending")
	if err != nil {
		t.Fatalf("ListFlagged failed: %v", err)
	}
	if len(flagged) != 0 {
		t.Errorf("ListFlagged: got %d plans after toggling off, want 0", len(flagged))
	}
}
