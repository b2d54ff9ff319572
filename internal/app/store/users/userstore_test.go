package userstore_test

import (
	"errors"
	"testing"
	"time"

	userstore "github.com/dalemusser/trainhub/internal/app/store/users"
	"github.com/dalemusser/trainhub/internal/app/system/indexes"
	"github.com/dalemusser/trainhub/internal/domain/models"
	"github.com/dalemusser/trainhub/internal/testutil"
	"go.uber.org/zap"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		FullName:     "  Jamie Rivera  ",
		Email:        "Jamie@Example.COM",
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if u.Email != "jamie@example.com" {
		t.Errorf("Email: got %q, want normalized lowercase", u.Email)
	}
	if u.FullName != "Jamie Rivera" {
		t.Errorf("FullName: got %q, want trimmed", u.FullName)
	}
	if u.FullNameCI != "jamie rivera" {
		t.Errorf("FullNameCI: got %q, want folded", u.FullNameCI)
	}
	if u.Role != models.RoleUser {
		t.Errorf("Role: got %q, want default %q", u.Role, models.RoleUser)
	}
	if u.Verified {
		t.Error("new users must start unverified")
	}
	if u.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db, zap.NewNop()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{FullName: "A", Email: "dup@test.com", PasswordHash: "h"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}
	_, err := store.Create(ctx, models.User{FullName: "B", Email: "DUP@test.com", PasswordHash: "h"})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_Create_BadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, models.User{FullName: "A", Email: "r@test.com", PasswordHash: "h", Role: "superuser"}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestStore_OTPLifecycle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{FullName: "A", Email: "otp@test.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	expires := time.Now().UTC().Add(10 * time.Minute)
	if err := store.SetOTP(ctx, u.ID, "123456", expires); err != nil {
		t.Fatalf("SetOTP failed: %v", err)
	}

	got, err := store.GetByEmail(ctx, "otp@test.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if got.OTP != "123456" {
		t.Errorf("OTP: got %q, want %q", got.OTP, "123456")
	}
	if got.OTPExpiresAt == nil {
		t.Fatal("expected OTPExpiresAt to be set")
	}

	if err := store.MarkVerified(ctx, u.ID); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}
	got, err = store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.Verified {
		t.Error("expected user to be verified")
	}
	if got.OTP != "" || got.OTPExpiresAt != nil {
		t.Error("expected OTP state to be cleared after verification")
	}
}

func TestStore_UpdateFitness_PartialMerge(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		FullName: "A", Email: "fit@test.com", PasswordHash: "h",
		Age: 30, HeightCm: 180, WeightKg: 80, Goal: "bulk",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Only weight supplied; everything else keeps its value.
	got, err := store.UpdateFitness(ctx, u.ID, 0, 0, 77.5, "")
	if err != nil {
		t.Fatalf("UpdateFitness failed: %v", err)
	}
	if got.WeightKg != 77.5 {
		t.Errorf("WeightKg: got %v, want 77.5", got.WeightKg)
	}
	if got.Age != 30 || got.HeightCm != 180 || got.Goal != "bulk" {
		t.Errorf("untouched fields changed: age=%d height=%v goal=%q", got.Age, got.HeightCm, got.Goal)
	}
}
