package challenges_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dalemusser/trainhub/internal/app/features/challenges"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.uber.org/zap"
)

func TestHandleCreateAndList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := challenges.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()
	user := fx.CreateUser(ctx, "runner@test.com", "password123")

	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"name":"30 Day Core","duration_days":30}`))
	req = testutil.WithIdentity(req, user.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got %d (body %s)", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest("GET", "/", nil)
	req = testutil.WithIdentity(req, user.ID, models.RoleUser)
	rec = httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got %d", rec.Code)
	}
	var body struct {
		Challenges []models.Challenge `json:"challenges"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(body.Challenges) != 1 || body.Challenges[0].Name != "30 Day Core" {
		t.Errorf("list contents: got %+v", body.Challenges)
	}
}

func TestHandleCreate_BadDuration(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := challenges.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()
	user := fx.CreateUser(ctx, "runner@test.com", "password123")

	req := httptest.NewRequest("POST", "/",
		strings.NewReader(`{"name":"Broken","duration_days":0}`))
	req = testutil.WithIdentity(req, user.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("zero duration: got %d, want 400", rec.Code)
	}
}

func TestHandleGet_ForeignChallenge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := challenges.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fx.CreateUser(ctx, "owner@test.com", "password123")
	intruder := fx.CreateUser(ctx, "intruder@test.com", "password123")
	ch := fx.CreateChallenge(ctx, owner.ID, "Private", 14)

	req := httptest.NewRequest("GET", "/"+ch.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "challengeID", ch.ID.Hex())
	req = testutil.WithIdentity(req, intruder.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	h.HandleGet(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign get: got %d, want 404", rec.Code)
	}
}

func TestHandleToggleTaskProgress_EmptyBody(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := challenges.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "runner@test.com", "password123")
	ch := fx.CreateChallenge(ctx, user.ID, "Stretch", 7)
	task := fx.CreateTask(ctx, ch.ID, user.ID, "morning stretch")

	// An empty body toggles today's entry.
	req := httptest.NewRequest("POST", "/tasks/"+task.ID.Hex()+"/progress", nil)
	req = testutil.WithChiURLParam(req, "taskID", task.ID.Hex())
	req = testutil.WithIdentity(req, user.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	h.HandleToggleTaskProgress(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("toggle: got %d (body %s)", rec.Code, rec.Body.String())
	}

	got, err := h.Tasks.ListByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("ListByChallenge failed: %v", err)
	}
	if len(got) != 1 || len(got[0].Progress) != 1 || !got[0].Progress[0].Status {
		t.Errorf("progress after toggle: %+v", got)
	}
}

func TestHandleDelete_Cascade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	h := challenges.NewHandler(db, zap.NewNop())
	ctx, cancel := testutil.TestContext()
	defer cancel()

	user := fx.CreateUser(ctx, "runner@test.com", "password123")
	ch := fx.CreateChallenge(ctx, user.ID, "Doomed", 7)
	fx.CreateTask(ctx, ch.ID, user.ID, "task one")
	fx.CreateTask(ctx, ch.ID, user.ID, "task two")

	req := httptest.NewRequest("DELETE", "/"+ch.ID.Hex(), nil)
	req = testutil.WithChiURLParam(req, "challengeID", ch.ID.Hex())
	req = testutil.WithIdentity(req, user.ID, models.RoleUser)
	rec := httptest.NewRecorder()
	h.HandleDelete(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: got %d (body %s)", rec.Code, rec.Body.String())
	}

	left, err := h.Tasks.ListByChallenge(ctx, ch.ID)
	if err != nil {
		t.Fatalf("ListByChallenge failed: %v", err)
	}
	if len(left) != 0 {
		t.Errorf("tasks left after cascade delete: %d", len(left))
	}
	if _, err := h.Challenges.GetOwned(ctx, ch.ID, user.ID); err == nil {
		t.Error("challenge still present after delete")
	}
}
