package models

import (
	"time"

	"github.com/google/uuid"
)

// Health status values for tool URL checks.
const (
	HealthUnknown   = "unknown"
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// Tool is a catalog entry for an AI product or service.
type Tool struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	HealthStatus    string     `json:"health_status"`
	HealthCheckedAt *time.Time `json:"health_checked_at"`
	HealthError     *string    `json:"health_error,omitempty"`

	// Populated via the tool_tags join for display
	Tags []Tag `json:"tags"`
}
