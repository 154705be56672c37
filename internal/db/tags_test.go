package db

import (
	"context"
	"errors"
	"testing"

	"toolhub/internal/models"
)

func TestCreateTagCaseInsensitiveUnique(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	tag := &models.Tag{Name: "nlp"}
	if err := db.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}

	// The unique index is on LOWER(name), so a different casing collides.
	dup := &models.Tag{Name: "NLP"}
	if err := db.CreateTag(ctx, dup); !errors.Is(err, ErrDuplicateTagName) {
		t.Errorf("CreateTag() case variant error = %v, want ErrDuplicateTagName", err)
	}
}

func TestGetTagByName(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	tag := &models.Tag{Name: "machine learning"}
	if err := db.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}

	got, err := db.GetTagByName(ctx, "Machine Learning")
	if err != nil {
		t.Fatalf("GetTagByName() error = %v", err)
	}
	if got.ID != tag.ID {
		t.Errorf("GetTagByName() ID = %v, want %v", got.ID, tag.ID)
	}

	if _, err := db.GetTagByName(ctx, "missing"); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("GetTagByName() missing error = %v, want ErrTagNotFound", err)
	}
}

func TestListTagsToolCounts(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	used := &models.Tag{Name: "nlp"}
	unused := &models.Tag{Name: "vision"}
	for _, tag := range []*models.Tag{used, unused} {
		if err := db.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag() error = %v", err)
		}
	}

	tool := &models.Tool{Name: "Whisper", URL: "https://example.com/whisper"}
	if err := db.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool() error = %v", err)
	}
	if _, err := db.LinkToolTag(ctx, tool.ID, used.ID); err != nil {
		t.Fatalf("LinkToolTag() error = %v", err)
	}

	tags, total, err := db.ListTags(ctx, "", 1, 10)
	if err != nil {
		t.Fatalf("ListTags() error = %v", err)
	}
	if total != 2 {
		t.Errorf("ListTags() total = %d, want 2", total)
	}

	counts := make(map[string]int64, len(tags))
	for _, tag := range tags {
		counts[tag.Name] = tag.ToolCount
	}
	if counts["nlp"] != 1 {
		t.Errorf("nlp tool count = %d, want 1", counts["nlp"])
	}
	if counts["vision"] != 0 {
		t.Errorf("vision tool count = %d, want 0", counts["vision"])
	}
}

func TestDeleteTag(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	inUse := &models.Tag{Name: "nlp"}
	free := &models.Tag{Name: "vision"}
	for _, tag := range []*models.Tag{inUse, free} {
		if err := db.CreateTag(ctx, tag); err != nil {
			t.Fatalf("CreateTag() error = %v", err)
		}
	}

	tool := &models.Tool{Name: "Whisper", URL: "https://example.com/whisper"}
	if err := db.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool() error = %v", err)
	}
	if _, err := db.LinkToolTag(ctx, tool.ID, inUse.ID); err != nil {
		t.Fatalf("LinkToolTag() error = %v", err)
	}

	// The tag FK is RESTRICT: a linked tag cannot be deleted.
	if err := db.DeleteTag(ctx, inUse.ID); !errors.Is(err, ErrTagInUse) {
		t.Errorf("DeleteTag() linked tag error = %v, want ErrTagInUse", err)
	}

	if err := db.DeleteTag(ctx, free.ID); err != nil {
		t.Errorf("DeleteTag() free tag error = %v", err)
	}
	if err := db.DeleteTag(ctx, free.ID); !errors.Is(err, ErrTagNotFound) {
		t.Errorf("DeleteTag() second delete error = %v, want ErrTagNotFound", err)
	}
}

func TestLinkToolTagIdempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	tag := &models.Tag{Name: "nlp"}
	if err := db.CreateTag(ctx, tag); err != nil {
		t.Fatalf("CreateTag() error = %v", err)
	}
	tool := &models.Tool{Name: "Whisper", URL: "https://example.com/whisper"}
	if err := db.CreateTool(ctx, tool); err != nil {
		t.Fatalf("CreateTool() error = %v", err)
	}

	inserted, err := db.LinkToolTag(ctx, tool.ID, tag.ID)
	if err != nil {
		t.Fatalf("LinkToolTag() error = %v", err)
	}
	if !inserted {
		t.Error("first LinkToolTag() inserted = false, want true")
	}

	inserted, err = db.LinkToolTag(ctx, tool.ID, tag.ID)
	if err != nil {
		t.Fatalf("LinkToolTag() repeat error = %v", err)
	}
	if inserted {
		t.Error("second LinkToolTag() inserted = true, want false")
	}

	tags, err := db.GetTagsForTool(ctx, tool.ID)
	if err != nil {
		t.Fatalf("GetTagsForTool() error = %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("GetTagsForTool() = %d tags, want 1", len(tags))
	}
}
