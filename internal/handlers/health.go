package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"toolhub/internal/db"
	"toolhub/internal/jobs"
)

// HealthHandler handles on-demand tool URL health checks.
type HealthHandler struct {
	db      *db.DB
	checker *jobs.HealthChecker
}

// NewHealthHandler creates a new health handler sharing the background
// checker's probing logic.
func NewHealthHandler(database *db.DB, checker *jobs.HealthChecker) *HealthHandler {
	return &HealthHandler{db: database, checker: checker}
}

// CheckTool performs an immediate health check for a tool. Admin only.
func (h *HealthHandler) CheckTool(c fiber.Ctx) error {
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

	status, errorMsg := h.checker.CheckURL(c.Context(), tool.URL)
	if err := h.db.UpdateToolHealthStatus(c.Context(), tool.ID, status, errorMsg); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to update health status")
	}

	now := time.Now()
	tool.HealthStatus = status
	tool.HealthCheckedAt = &now
	tool.HealthError = errorMsg

	return jsonSuccess(c, tool)
}
