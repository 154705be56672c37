package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag is a categorization label attachable to many tools. Names are unique
// case-insensitively and stored in normalized (lowercase) form.
type Tag struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`

	// Populated via JOIN for admin listings
	ToolCount int64 `json:"tool_count,omitempty"`
}
