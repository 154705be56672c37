package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"toolhub/internal/models"
)

func testUser(t *testing.T, db *DB, sub string) *models.User {
	t.Helper()
	user := &models.User{
		Sub:   sub,
		Email: sub + "@example.com",
		Name:  "Test " + sub,
	}
	if err := db.UpsertUser(context.Background(), user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	return user
}

func TestCreateToolRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser(t, db, "submitter")

	req := &models.ToolRequest{
		Name:        "Whisper",
		URL:         "https://example.com/whisper",
		Description: "Speech to text",
		Tags:        models.TagList{"speech", "audio"},
		SubmittedBy: &user.ID,
	}
	if err := db.CreateToolRequest(ctx, req, 5); err != nil {
		t.Fatalf("CreateToolRequest() error = %v", err)
	}
	if req.Status != models.StatusPending {
		t.Errorf("new request status = %q, want pending", req.Status)
	}

	got, err := db.GetRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() error = %v", err)
	}
	if len(got.Tags) != 2 {
		t.Errorf("request tags = %v, want 2 entries", got.Tags)
	}
}

func TestCreateToolRequestPendingLimit(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser(t, db, "flooder")

	for i := 0; i < 2; i++ {
		req := &models.ToolRequest{
			Name:        fmt.Sprintf("Tool %d", i),
			URL:         fmt.Sprintf("https://example.com/tool-%d", i),
			SubmittedBy: &user.ID,
		}
		if err := db.CreateToolRequest(ctx, req, 2); err != nil {
			t.Fatalf("CreateToolRequest() #%d error = %v", i, err)
		}
	}

	over := &models.ToolRequest{
		Name:        "One Too Many",
		URL:         "https://example.com/over",
		SubmittedBy: &user.ID,
	}
	if err := db.CreateToolRequest(ctx, over, 2); !errors.Is(err, ErrPendingRequestLimit) {
		t.Errorf("CreateToolRequest() over limit error = %v, want ErrPendingRequestLimit", err)
	}

	// Anonymous submissions are not limited.
	anon := &models.ToolRequest{Name: "Anon Tool", URL: "https://example.com/anon"}
	if err := db.CreateToolRequest(ctx, anon, 2); err != nil {
		t.Errorf("CreateToolRequest() anonymous error = %v", err)
	}
}

func TestUpdateRequestStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	admin := testUser(t, db, "admin")

	req := &models.ToolRequest{Name: "Whisper", URL: "https://example.com/whisper"}
	if err := db.CreateToolRequest(ctx, req, 5); err != nil {
		t.Fatalf("CreateToolRequest() error = %v", err)
	}

	updated, err := db.UpdateRequestStatus(ctx, req.ID, models.StatusApproved, &admin.ID, "looks good")
	if err != nil {
		t.Fatalf("UpdateRequestStatus() error = %v", err)
	}
	if updated.Status != models.StatusApproved {
		t.Errorf("status = %q, want approved", updated.Status)
	}
	if updated.AdminNotes != "looks good" {
		t.Errorf("admin notes = %q, want %q", updated.AdminNotes, "looks good")
	}
	if updated.ReviewedBy == nil || *updated.ReviewedBy != admin.ID {
		t.Errorf("reviewed_by = %v, want %v", updated.ReviewedBy, admin.ID)
	}
	if updated.ReviewedAt == nil {
		t.Error("reviewed_at not set")
	}

	// The conditional update only matches pending rows, so a second
	// decision loses.
	if _, err := db.UpdateRequestStatus(ctx, req.ID, models.StatusDenied, &admin.ID, ""); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("UpdateRequestStatus() second decision error = %v, want ErrRequestNotPending", err)
	}

	if _, err := db.UpdateRequestStatus(ctx, uuid.New(), models.StatusApproved, &admin.ID, ""); !errors.Is(err, ErrRequestNotPending) {
		t.Errorf("UpdateRequestStatus() unknown id error = %v, want ErrRequestNotPending", err)
	}
}

func TestListRequestsStatusFilter(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser(t, db, "submitter")

	for i := 0; i < 3; i++ {
		req := &models.ToolRequest{
			Name:        fmt.Sprintf("Tool %d", i),
			URL:         fmt.Sprintf("https://example.com/tool-%d", i),
			SubmittedBy: &user.ID,
		}
		if err := db.CreateToolRequest(ctx, req, 10); err != nil {
			t.Fatalf("CreateToolRequest() error = %v", err)
		}
		if i == 0 {
			if _, err := db.UpdateRequestStatus(ctx, req.ID, models.StatusDenied, &user.ID, ""); err != nil {
				t.Fatalf("UpdateRequestStatus() error = %v", err)
			}
		}
	}

	pending, total, err := db.ListRequests(ctx, models.StatusPending, 1, 10)
	if err != nil {
		t.Fatalf("ListRequests(pending) error = %v", err)
	}
	if total != 2 || len(pending) != 2 {
		t.Errorf("pending requests = %d (total %d), want 2", len(pending), total)
	}
	// Submitter fields come from the users join.
	if pending[0].SubmitterEmail != "submitter@example.com" {
		t.Errorf("submitter email = %q, want joined value", pending[0].SubmitterEmail)
	}

	all, total, err := db.ListRequests(ctx, "", 1, 10)
	if err != nil {
		t.Fatalf("ListRequests(all) error = %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Errorf("all requests = %d (total %d), want 3", len(all), total)
	}

	mine, err := db.GetRequestsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetRequestsByUser() error = %v", err)
	}
	if len(mine) != 3 {
		t.Errorf("GetRequestsByUser() = %d requests, want 3", len(mine))
	}
}

func TestDeleteUserKeepsRequests(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := testUser(t, db, "leaver")

	req := &models.ToolRequest{Name: "Whisper", URL: "https://example.com/whisper", SubmittedBy: &user.ID}
	if err := db.CreateToolRequest(ctx, req, 5); err != nil {
		t.Fatalf("CreateToolRequest() error = %v", err)
	}

	if err := db.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser() error = %v", err)
	}

	// The FK is SET NULL: the request survives with the submitter cleared.
	got, err := db.GetRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetRequestByID() after user delete error = %v", err)
	}
	if got.SubmittedBy != nil {
		t.Errorf("submitted_by = %v, want nil", got.SubmittedBy)
	}
}
