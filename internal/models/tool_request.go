package models

import (
	"time"

	"github.com/google/uuid"
)

// Tool request status values. A request starts pending and is moved to
// exactly one of the terminal states by an admin decision.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusDenied   = "denied"
)

// IsValidDecision reports whether s is a status an admin may decide.
func IsValidDecision(s string) bool {
	return s == StatusApproved || s == StatusDenied
}

// ToolRequest is a user-submitted suggestion for a new Tool, pending admin
// review. Tags are raw, unresolved names as submitted.
type ToolRequest struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	URL         string     `json:"url"`
	Description string     `json:"description"`
	Tags        TagList    `json:"tags"`
	Status      string     `json:"status"`
	AdminNotes  string     `json:"admin_notes,omitempty"`
	SubmittedBy *uuid.UUID `json:"submitted_by"`
	ReviewedBy  *uuid.UUID `json:"reviewed_by"`
	ReviewedAt  *time.Time `json:"reviewed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Populated via JOIN for admin listings
	SubmitterName  string `json:"submitter_name,omitempty"`
	SubmitterEmail string `json:"submitter_email,omitempty"`
}

// IsPending returns true if the request has not been decided yet.
func (r *ToolRequest) IsPending() bool {
	return r.Status == StatusPending
}
