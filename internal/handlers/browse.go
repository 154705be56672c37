package handlers

import (
	"github.com/gofiber/fiber/v3"

	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/models"
)

// BrowseHandler renders the public HTML directory pages.
type BrowseHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewBrowseHandler creates a new browse handler.
func NewBrowseHandler(database *db.DB, cfg *config.Config) *BrowseHandler {
	return &BrowseHandler{db: database, cfg: cfg}
}

// branding merges site branding into a template data map.
func (h *BrowseHandler) branding(data fiber.Map) fiber.Map {
	data["SiteTitle"] = h.cfg.SiteTitle
	data["SiteTagline"] = h.cfg.SiteTagline
	data["SiteFooter"] = h.cfg.SiteFooter
	return data
}

// Index renders the browseable tool directory with search and tag filter.
func (h *BrowseHandler) Index(c fiber.Ctx) error {
	page, limit := pageParams(c)
	query := c.Query("q", "")
	tag := models.NormalizeTagName(c.Query("tag", ""))

	tools, total, err := h.db.ListTools(c.Context(), db.ToolFilter{
		Query: query,
		Tag:   tag,
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	if err := h.db.AttachTags(c.Context(), tools); err != nil {
		return err
	}

	// Tag cloud for the filter sidebar
	tags, _, err := h.db.ListTags(c.Context(), "", 1, 100)
	if err != nil {
		return err
	}

	user, _ := c.Locals("user").(*models.User)
	pagination := models.NewPagination(page, limit, total)

	return c.Render("index", h.branding(fiber.Map{
		"User":       user,
		"Tools":      tools,
		"Tags":       tags,
		"Query":      query,
		"ActiveTag":  tag,
		"Pagination": pagination,
		"HasPrev":    page > 1,
		"HasNext":    int64(page) < pagination.TotalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
	}))
}
