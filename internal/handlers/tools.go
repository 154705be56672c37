package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"toolhub/internal/approval"
	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/models"
	"toolhub/internal/validation"
)

// ToolHandler handles tool catalog CRUD operations via JSON API.
type ToolHandler struct {
	db       *db.DB
	cfg      *config.Config
	workflow *approval.Workflow
}

// NewToolHandler creates a new tool handler. The workflow is used for tag
// resolution when admins set tags directly on a tool.
func NewToolHandler(database *db.DB, cfg *config.Config, workflow *approval.Workflow) *ToolHandler {
	return &ToolHandler{db: database, cfg: cfg, workflow: workflow}
}

// List returns a page of tools, optionally filtered by search query and tag.
func (h *ToolHandler) List(c fiber.Ctx) error {
	page, limit := pageParams(c)
	filter := db.ToolFilter{
		Query: c.Query("q", ""),
		Tag:   models.NormalizeTagName(c.Query("tag", "")),
		Page:  page,
		Limit: limit,
	}

	tools, total, err := h.db.ListTools(c.Context(), filter)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tools")
	}

	if err := h.db.AttachTags(c.Context(), tools); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tool tags")
	}

	return jsonSuccess(c, fiber.Map{
		"tools":      tools,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Get returns a single tool by ID, tags included.
func (h *ToolHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tool id")
	}

	tool, err := h.db.GetToolByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrToolNotFound) {
			return jsonError(c, fiber.StatusNotFound, "tool not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tool")
	}

	tags, err := h.db.GetTagsForTool(c.Context(), tool.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tool tags")
	}
	tool.Tags = tags

	return jsonSuccess(c, tool)
}

type toolBody struct {
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Tags        models.TagList `json:"tags"`
}

func validateToolBody(body *toolBody) (ok bool, msg string) {
	if valid, msg := validation.ValidateToolName(body.Name); !valid {
		return false, msg
	}
	if valid, msg := validation.ValidateURL(body.URL); !valid {
		return false, msg
	}
	if valid, msg := validation.ValidateDescription(body.Description); !valid {
		return false, msg
	}
	for _, name := range body.Tags.Normalized() {
		if !validation.ValidateTagName(name) {
			return false, "invalid tag name: " + name
		}
	}
	return true, ""
}

// Create adds a tool directly to the catalog, bypassing the request queue.
// Admin only.
func (h *ToolHandler) Create(c fiber.Ctx) error {
	var body toolBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if ok, msg := validateToolBody(&body); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	tool := &models.Tool{
		Name:        body.Name,
		URL:         body.URL,
		Description: body.Description,
	}
	if err := h.db.CreateTool(c.Context(), tool); err != nil {
		if errors.Is(err, db.ErrDuplicateToolURL) {
			return jsonError(c, fiber.StatusConflict, "a tool with this URL already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create tool")
	}

	report, err := h.workflow.ReconcileToolTags(c.Context(), tool, body.Tags.Normalized())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to set tool tags")
	}

	tags, err := h.db.GetTagsForTool(c.Context(), tool.ID)
	if err == nil {
		tool.Tags = tags
	}

	return jsonCreated(c, fiber.Map{
		"tool":     tool,
		"warnings": report.Warnings(),
	})
}

// Update modifies a tool's fields and reconciles its tag set. Admin only.
func (h *ToolHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tool id")
	}

	var body toolBody
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if ok, msg := validateToolBody(&body); !ok {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	tool := &models.Tool{
		ID:          id,
		Name:        body.Name,
		URL:         body.URL,
		Description: body.Description,
	}
	if err := h.db.UpdateTool(c.Context(), tool); err != nil {
		switch {
		case errors.Is(err, db.ErrToolNotFound):
			return jsonError(c, fiber.StatusNotFound, "tool not found")
		case errors.Is(err, db.ErrDuplicateToolURL):
			return jsonError(c, fiber.StatusConflict, "a tool with this URL already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update tool")
	}

	report, err := h.workflow.ReconcileToolTags(c.Context(), tool, body.Tags.Normalized())
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to set tool tags")
	}

	tags, err := h.db.GetTagsForTool(c.Context(), tool.ID)
	if err == nil {
		tool.Tags = tags
	}

	return jsonSuccess(c, fiber.Map{
		"tool":     tool,
		"warnings": report.Warnings(),
	})
}

// Delete removes a tool from the catalog. Tag links go with it. Admin only.
func (h *ToolHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tool id")
	}

	if err := h.db.DeleteTool(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrToolNotFound) {
			return jsonError(c, fiber.StatusNotFound, "tool not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete tool")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}
