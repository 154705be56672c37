package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/models"
)

// UserHandler handles user administration operations.
type UserHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewUserHandler creates a new user handler.
func NewUserHandler(database *db.DB, cfg *config.Config) *UserHandler {
	return &UserHandler{db: database, cfg: cfg}
}

// List returns a page of registered users. Admin only.
func (h *UserHandler) List(c fiber.Ctx) error {
	page, limit := pageParams(c)

	users, total, err := h.db.ListUsers(c.Context(), page, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch users")
	}

	return jsonSuccess(c, fiber.Map{
		"users":      users,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Me returns the authenticated user's own record.
func (h *UserHandler) Me(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}
	return jsonSuccess(c, user)
}

// UpdateRole changes a user's role. Admins cannot demote themselves, so
// there is always at least one admin left. Admin only.
func (h *UserHandler) UpdateRole(c fiber.Ctx) error {
	actor, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	var body struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Role != models.RoleUser && body.Role != models.RoleAdmin {
		return jsonError(c, fiber.StatusBadRequest, "role must be user or admin")
	}

	if id == actor.ID && body.Role != models.RoleAdmin {
		return jsonError(c, fiber.StatusBadRequest, "you cannot remove your own admin role")
	}

	if err := h.db.UpdateUserRole(c.Context(), id, body.Role); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to update role")
	}

	return jsonSuccess(c, fiber.Map{"id": id, "role": body.Role})
}

// Delete removes a user account. Their submitted requests survive with the
// submitter cleared. Admin only.
func (h *UserHandler) Delete(c fiber.Ctx) error {
	actor, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if id == actor.ID {
		return jsonError(c, fiber.StatusBadRequest, "you cannot delete your own account")
	}

	if err := h.db.DeleteUser(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return jsonError(c, fiber.StatusNotFound, "user not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete user")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}
