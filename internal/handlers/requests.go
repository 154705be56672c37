package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"toolhub/internal/approval"
	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/email"
	"toolhub/internal/metrics"
	"toolhub/internal/models"
	"toolhub/internal/validation"
)

// RequestHandler handles the tool request submission and review queue.
type RequestHandler struct {
	db       *db.DB
	cfg      *config.Config
	workflow *approval.Workflow
	notifier *email.Notifier
}

// NewRequestHandler creates a new request handler.
func NewRequestHandler(database *db.DB, cfg *config.Config, workflow *approval.Workflow, notifier *email.Notifier) *RequestHandler {
	return &RequestHandler{db: database, cfg: cfg, workflow: workflow, notifier: notifier}
}

// Submit creates a new pending tool request.
func (h *RequestHandler) Submit(c fiber.Ctx) error {
	user, _ := c.Locals("user").(*models.User)

	var body struct {
		Name        string         `json:"name"`
		URL         string         `json:"url"`
		Description string         `json:"description"`
		Tags        models.TagList `json:"tags"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateToolName(body.Name); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateURL(body.URL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateDescription(body.Description); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	for _, name := range body.Tags.Normalized() {
		if !validation.ValidateTagName(name) {
			return jsonError(c, fiber.StatusBadRequest, "invalid tag name: "+name)
		}
	}

	req := &models.ToolRequest{
		Name:        body.Name,
		URL:         body.URL,
		Description: body.Description,
		Tags:        body.Tags,
	}
	if user != nil {
		req.SubmittedBy = &user.ID
	}

	if err := h.db.CreateToolRequest(c.Context(), req, h.cfg.PendingRequestLimit); err != nil {
		if errors.Is(err, db.ErrPendingRequestLimit) {
			return jsonError(c, fiber.StatusConflict, "you have too many pending requests; wait for a review first")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to submit request")
	}

	h.notifier.NotifyRequestSubmitted(c.Context(), req, user)

	return jsonCreated(c, req)
}

// Mine returns the authenticated user's own requests, newest first.
func (h *RequestHandler) Mine(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	requests, err := h.db.GetRequestsByUser(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}

	return jsonSuccess(c, requests)
}

// List returns the review queue, optionally filtered by status. Admin only.
func (h *RequestHandler) List(c fiber.Ctx) error {
	status := c.Query("status", "")
	switch status {
	case "", models.StatusPending, models.StatusApproved, models.StatusDenied:
	default:
		return jsonError(c, fiber.StatusBadRequest, "invalid status filter")
	}

	page, limit := pageParams(c)
	requests, total, err := h.db.ListRequests(c.Context(), status, page, limit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}

	return jsonSuccess(c, fiber.Map{
		"requests":   requests,
		"pagination": models.NewPagination(page, limit, total),
	})
}

// Get returns a single request by ID. Admin only.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	req, err := h.db.GetRequestByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request")
	}

	return jsonSuccess(c, req)
}

// decisionErrorStatus maps a workflow error to an HTTP status and message.
func decisionErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, db.ErrRequestNotFound):
		return fiber.StatusNotFound, "request not found"
	case errors.Is(err, approval.ErrInvalidDecision):
		return fiber.StatusBadRequest, "status must be approved or denied"
	case errors.Is(err, approval.ErrInvalidTransition):
		return fiber.StatusConflict, "request has already been processed"
	case errors.Is(err, approval.ErrInvalidRequest):
		return fiber.StatusUnprocessableEntity, "request is missing a name or url"
	}
	return fiber.StatusInternalServerError, "failed to process decision"
}

// Decide moves a pending request to approved or denied. Approval also
// materializes the tool and links its tags. Admin only.
func (h *RequestHandler) Decide(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	var body struct {
		Status     string `json:"status"`
		AdminNotes string `json:"admin_notes"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	updated, report, err := h.workflow.Transition(c.Context(), id, body.Status, &user.ID, body.AdminNotes)
	if err != nil {
		status, message := decisionErrorStatus(err)
		return jsonError(c, status, message)
	}

	metrics.RecordDecision(updated.Status)

	switch updated.Status {
	case models.StatusApproved:
		h.notifier.NotifyRequestApproved(c.Context(), updated, report.Tool)
	case models.StatusDenied:
		h.notifier.NotifyRequestDenied(c.Context(), updated)
	}

	return jsonSuccess(c, fiber.Map{
		"request":  updated,
		"report":   report,
		"warnings": report.Warnings(),
	})
}

// Delete removes a request from the queue entirely. Admin only.
func (h *RequestHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if err := h.db.DeleteRequest(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrRequestNotFound) {
			return jsonError(c, fiber.StatusNotFound, "request not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete request")
	}

	return jsonSuccess(c, fiber.Map{"deleted": id})
}
