package db

import (
	"context"
	"errors"
	"testing"

	"toolhub/internal/models"
)

func TestUpsertUserRolePromotion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	user := &models.User{Sub: "sub-1", Email: "a@example.com", Name: "A"}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("initial role = %q, want user", user.Role)
	}

	// Logging in with the admin role promotes.
	promo := &models.User{Sub: "sub-1", Email: "a@example.com", Name: "A", Role: models.RoleAdmin}
	if err := db.UpsertUser(ctx, promo); err != nil {
		t.Fatalf("UpsertUser() promotion error = %v", err)
	}
	if promo.Role != models.RoleAdmin {
		t.Errorf("promoted role = %q, want admin", promo.Role)
	}

	// A later login without the admin role does not demote.
	again := &models.User{Sub: "sub-1", Email: "a@example.com", Name: "A"}
	if err := db.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser() re-login error = %v", err)
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("role after plain re-login = %q, want admin kept", again.Role)
	}
}

func TestGetAdminEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for _, u := range []*models.User{
		{Sub: "admin-1", Email: "admin1@example.com", Name: "A1", Role: models.RoleAdmin},
		{Sub: "admin-2", Email: "admin2@example.com", Name: "A2", Role: models.RoleAdmin},
		{Sub: "user-1", Email: "user@example.com", Name: "U", Role: models.RoleUser},
	} {
		if err := db.UpsertUser(ctx, u); err != nil {
			t.Fatalf("UpsertUser() error = %v", err)
		}
	}

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails() error = %v", err)
	}
	if len(emails) != 2 {
		t.Errorf("GetAdminEmails() = %v, want 2 admins", emails)
	}
	for _, e := range emails {
		if e == "user@example.com" {
			t.Error("GetAdminEmails() included a non-admin")
		}
	}
}

func TestUpdateUserRole(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser(t, db, "promotee")

	if err := db.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole() error = %v", err)
	}

	got, err := db.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if !got.IsAdmin() {
		t.Errorf("role = %q, want admin", got.Role)
	}

	if err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}
	if err := db.UpdateUserRole(ctx, user.ID, models.RoleUser); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("UpdateUserRole() deleted user error = %v, want ErrUserNotFound", err)
	}
}

func TestDecisionStats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := db.IncrementDecisionStat(ctx, models.StatusApproved); err != nil {
			t.Fatalf("IncrementDecisionStat() error = %v", err)
		}
	}
	if err := db.IncrementDecisionStat(ctx, models.StatusDenied); err != nil {
		t.Fatalf("IncrementDecisionStat() error = %v", err)
	}

	stats, err := db.GetDecisionStats(ctx)
	if err != nil {
		t.Fatalf("GetDecisionStats() error = %v", err)
	}

	counts := make(map[string]int64, len(stats))
	for _, s := range stats {
		counts[s.Decision] = s.Count
	}
	if counts[models.StatusApproved] != 3 {
		t.Errorf("approved count = %d, want 3", counts[models.StatusApproved])
	}
	if counts[models.StatusDenied] != 1 {
		t.Errorf("denied count = %d, want 1", counts[models.StatusDenied])
	}
}
