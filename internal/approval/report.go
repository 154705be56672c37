package approval

import (
	"fmt"

	"toolhub/internal/models"
)

// TagFailure records a tag name that could not be resolved to a Tag row.
type TagFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// LinkFailure records a resolved tag that could not be linked to the tool.
type LinkFailure struct {
	Tag   string `json:"tag"`
	Error string `json:"error"`
}

// LinkReport summarizes the per-tag outcome of linking tags to a tool.
// Linking is best-effort: failures are recorded, never fatal.
type LinkReport struct {
	Linked        int           `json:"linked"`
	AlreadyLinked int           `json:"already_linked"`
	Failed        []LinkFailure `json:"failed,omitempty"`
}

// Report describes the side effects of an approval. A denial produces an
// empty report.
type Report struct {
	// Tool is the catalog entry the request maps to, whether newly created
	// or pre-existing. Nil for denials.
	Tool *models.Tool `json:"tool,omitempty"`

	// ToolCreated is false when a tool with the request's URL already
	// existed and materialization was a no-op.
	ToolCreated bool `json:"tool_created"`

	TagFailures []TagFailure `json:"tag_failures,omitempty"`
	Links       LinkReport   `json:"links"`
}

// Warnings renders the report's partial failures as human-readable strings
// for admin tooling. Empty when everything linked cleanly.
func (r *Report) Warnings() []string {
	var warnings []string
	for _, f := range r.TagFailures {
		warnings = append(warnings, fmt.Sprintf("tag %q could not be resolved: %s", f.Name, f.Error))
	}
	for _, f := range r.Links.Failed {
		warnings = append(warnings, fmt.Sprintf("tag %q could not be linked: %s", f.Tag, f.Error))
	}
	return warnings
}
