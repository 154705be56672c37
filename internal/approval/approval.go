// Package approval implements the tool-request decision workflow: the
// pending → approved|denied state machine and, on approval, the
// materialize-resolve-link sequence that turns a request into a catalog
// entry with its tags.
//
// The workflow deliberately runs without a surrounding transaction. Every
// step is idempotent (unique-URL guard on tools, conflict-and-refetch on
// tags, insert-if-absent on links, conditional status update), so a crash
// mid-sequence is repaired by re-invoking Transition on the same request.
package approval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"toolhub/internal/db"
	"toolhub/internal/models"
)

// Store is the persistence surface the workflow needs. *db.DB satisfies it.
type Store interface {
	GetRequestByID(ctx context.Context, id uuid.UUID) (*models.ToolRequest, error)
	UpdateRequestStatus(ctx context.Context, id uuid.UUID, decision string, reviewerID *uuid.UUID, notes string) (*models.ToolRequest, error)

	GetToolByURL(ctx context.Context, url string) (*models.Tool, error)
	CreateTool(ctx context.Context, tool *models.Tool) error

	GetTagByName(ctx context.Context, name string) (*models.Tag, error)
	CreateTag(ctx context.Context, tag *models.Tag) error

	LinkToolTag(ctx context.Context, toolID, tagID uuid.UUID) (bool, error)
	UnlinkToolTag(ctx context.Context, toolID, tagID uuid.UUID) error
	GetTagsForTool(ctx context.Context, toolID uuid.UUID) ([]models.Tag, error)
}

// Workflow orchestrates tool-request decisions.
type Workflow struct {
	store  Store
	logger *slog.Logger
}

// New creates a workflow over the given store.
func New(store Store, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{store: store, logger: logger}
}

// Transition decides a pending request. On approval it materializes the
// tool, resolves and links the request's tags, and then flips the request
// status; tag and link failures are reported, not fatal. On denial it only
// flips the status.
//
// Errors: db.ErrRequestNotFound if no such request, ErrInvalidDecision for
// an unknown target status, ErrInvalidTransition if the request is not
// pending (or lost a concurrent decision race), ErrInvalidRequest for a
// malformed request, and wrapped store errors for everything else. A store
// failure while materializing leaves the request pending.
func (w *Workflow) Transition(ctx context.Context, id uuid.UUID, decision string, reviewerID *uuid.UUID, notes string) (*models.ToolRequest, *Report, error) {
	if !models.IsValidDecision(decision) {
		return nil, nil, ErrInvalidDecision
	}

	req, err := w.store.GetRequestByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !req.IsPending() {
		return nil, nil, ErrInvalidTransition
	}

	report := &Report{}

	if decision == models.StatusApproved {
		tool, created, err := w.materializeTool(ctx, req)
		if err != nil {
			return nil, nil, err
		}
		report.Tool = tool
		report.ToolCreated = created

		// A pre-existing tool keeps its own tag set; the request's tags
		// apply only to a tool this approval created.
		if created {
			names := req.Tags.Normalized()
			tags, tagFailures := w.ResolveTags(ctx, names)
			report.TagFailures = tagFailures
			report.Links = w.LinkTags(ctx, tool, names, tags)
		}
	}

	updated, err := w.store.UpdateRequestStatus(ctx, id, decision, reviewerID, notes)
	if errors.Is(err, db.ErrRequestNotPending) {
		// A concurrent decision won the conditional update. Any side
		// effects above were idempotent no-ops or are now owned by the
		// winning approval.
		return nil, nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, nil, fmt.Errorf("update request status: %w", err)
	}

	for _, warning := range report.Warnings() {
		w.logger.Warn("approval completed with partial failure",
			"request_id", id, "warning", warning)
	}

	return updated, report, nil
}

// materializeTool converts an approved request into a persisted tool.
// Returns the tool and whether this call created it; a request whose URL
// already matches a catalog entry is a success-no-op.
func (w *Workflow) materializeTool(ctx context.Context, req *models.ToolRequest) (*models.Tool, bool, error) {
	if req.Name == "" || req.URL == "" {
		return nil, false, ErrInvalidRequest
	}

	existing, err := w.store.GetToolByURL(ctx, req.URL)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrToolNotFound) {
		return nil, false, fmt.Errorf("check existing tool: %w", err)
	}

	tool := &models.Tool{
		Name:        req.Name,
		Description: req.Description,
		URL:         req.URL,
	}
	err = w.store.CreateTool(ctx, tool)
	if errors.Is(err, db.ErrDuplicateToolURL) {
		// Lost a create race; the other writer's row is our result.
		existing, err := w.store.GetToolByURL(ctx, req.URL)
		if err != nil {
			return nil, false, fmt.Errorf("refetch tool after conflict: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create tool: %w", err)
	}
	return tool, true, nil
}
