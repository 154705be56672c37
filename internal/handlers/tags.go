package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/models"
	"toolhub/internal/validation"
)

// TagHandler handles tag CRUD operations via JSON API.
type TagHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(database *db.DB, cfg *config.Config) *TagHandler {
	return &TagHandler{db: database, cfg: cfg}
}

// List returns a page of tags with their tool counts.
func (h *TagHandler) List(c fiber.Ctx) error {
	page, limit := pageParams(c)

	tags, total, err := h.db.ListTags(c.Context(), c.Query("q", ""), page, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tags")
	}

	return jsonSuccess(c, fiber.Map{
		"tags":       tags,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Get returns a single tag by ID.
func (h *TagHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tag id")
	}

	tag, err := h.db.GetTagByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrTagNotFound) {
			return jsonError(c, fiber.StatusNotFound, "tag not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch tag")
	}

	return jsonSuccess(c, tag)
}

// Create adds a new tag. Names are normalized before storage; creating an
// existing name (any casing) is a conflict. Admin only.
func (h *TagHandler) Create(c fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := models.NormalizeTagName(body.Name)
	if !validation.ValidateTagName(name) {
		return jsonError(c, fiber.StatusBadRequest, "tag name must be lowercase words separated by spaces or hyphens")
	}

	tag := &models.Tag{Name: name}
	if err := h.db.CreateTag(c.Context(), tag); err != nil {
		if errors.Is(err, db.ErrDuplicateTagName) {
			return jsonError(c, fiber.StatusConflict, "a tag with this name already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to create tag")
	}

	return jsonCreated(c, tag)
}

// Update renames a tag. Admin only.
func (h *TagHandler) Update(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tag id")
	}

	var body struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	name := models.NormalizeTagName(body.Name)
	if !validation.ValidateTagName(name) {
		return jsonError(c, fiber.StatusBadRequest, "tag name must be lowercase words separated by spaces or hyphens")
	}

	tag := &models.Tag{ID: id, Name: name}
	if err := h.db.UpdateTag(c.Context(), tag); err != nil {
		switch {
		case errors.Is(err, db.ErrTagNotFound):
			return jsonError(c, fiber.StatusNotFound, "tag not found")
		case errors.Is(err, db.ErrDuplicateTagName):
			return jsonError(c, fiber.StatusConflict, "a tag with this name already exists")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update tag")
	}

	return jsonSuccess(c, tag)
}

// Delete removes a tag. Tags still linked to tools cannot be deleted.
// Admin only.
func (h *TagHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid tag id")
	}

	if err := h.db.DeleteTag(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, db.ErrTagNotFound):
			return jsonError(c, fiber.StatusNotFound, "tag not found")
		case errors.Is(err, db.ErrTagInUse):
			return jsonError(c, fiber.StatusConflict, "tag is still attached to tools")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete tag")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}
