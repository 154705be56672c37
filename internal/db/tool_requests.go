package db

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"toolhub/internal/models"
)

// requestColumns is the standard column list for tool request queries.
const requestColumns = `id, name, url, description, tags, status, admin_notes,
	submitted_by, reviewed_by, reviewed_at, created_at, updated_at`

// scanRequest scans a row into a ToolRequest struct.
func scanRequest(row pgx.Row) (*models.ToolRequest, error) {
	var req models.ToolRequest
	var rawTags []string
	err := row.Scan(
		&req.ID,
		&req.Name,
		&req.URL,
		&req.Description,
		&rawTags,
		&req.Status,
		&req.AdminNotes,
		&req.SubmittedBy,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	req.Tags = models.TagList(rawTags)
	return &req, nil
}

// CreateToolRequest inserts a new pending request after checking the
// submitter's pending-request limit (skipped for anonymous submissions).
func (d *DB) CreateToolRequest(ctx context.Context, req *models.ToolRequest, pendingLimit int) error {
	if req.SubmittedBy != nil && pendingLimit > 0 {
		count, err := d.CountPendingRequestsByUser(ctx, *req.SubmittedBy)
		if err != nil {
			return err
		}
		if count >= pendingLimit {
			return ErrPendingRequestLimit
		}
	}

	query := `
		INSERT INTO tool_requests (name, url, description, tags, submitted_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, status, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		req.Name,
		req.URL,
		req.Description,
		[]string(req.Tags),
		req.SubmittedBy,
	).Scan(&req.ID, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

// CountPendingRequestsByUser counts a user's undecided requests.
func (d *DB) CountPendingRequestsByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM tool_requests WHERE submitted_by = $1 AND status = $2
	`, userID, models.StatusPending).Scan(&count)
	return count, err
}

// GetRequestByID retrieves a tool request by its ID.
func (d *DB) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.ToolRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tool_requests WHERE id = $1`
	return scanRequest(d.Pool.QueryRow(ctx, query, id))
}

// ListRequests retrieves a page of requests, newest first, optionally
// filtered by status, with submitter info joined for display.
func (d *DB) ListRequests(ctx context.Context, status string, page, limit int) ([]models.ToolRequest, int64, error) {
	where := ``
	var args []any
	if status != "" {
		args = append(args, status)
		where = ` WHERE r.status = $1`
	}

	var total int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tool_requests r`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	limitArg := strconv.Itoa(len(args))
	args = append(args, (page-1)*limit)
	offsetArg := strconv.Itoa(len(args))

	sql := `
		SELECT r.id, r.name, r.url, r.description, r.tags, r.status, r.admin_notes,
			r.submitted_by, r.reviewed_by, r.reviewed_at, r.created_at, r.updated_at,
			COALESCE(u.name, ''), COALESCE(u.email, '')
		FROM tool_requests r
		LEFT JOIN users u ON u.id = r.submitted_by` + where + `
		ORDER BY r.created_at DESC
		LIMIT $` + limitArg + ` OFFSET $` + offsetArg

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []models.ToolRequest
	for rows.Next() {
		var req models.ToolRequest
		var rawTags []string
		if err := rows.Scan(
			&req.ID, &req.Name, &req.URL, &req.Description, &rawTags, &req.Status, &req.AdminNotes,
			&req.SubmittedBy, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
			&req.SubmitterName, &req.SubmitterEmail,
		); err != nil {
			return nil, 0, err
		}
		req.Tags = models.TagList(rawTags)
		requests = append(requests, req)
	}
	return requests, total, rows.Err()
}

// GetRequestsByUser retrieves all requests submitted by one user, newest first.
func (d *DB) GetRequestsByUser(ctx context.Context, userID uuid.UUID) ([]models.ToolRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tool_requests WHERE submitted_by = $1 ORDER BY created_at DESC`

	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.ToolRequest
	for rows.Next() {
		var req models.ToolRequest
		var rawTags []string
		if err := rows.Scan(
			&req.ID, &req.Name, &req.URL, &req.Description, &rawTags, &req.Status, &req.AdminNotes,
			&req.SubmittedBy, &req.ReviewedBy, &req.ReviewedAt, &req.CreatedAt, &req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		req.Tags = models.TagList(rawTags)
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// UpdateRequestStatus flips a pending request to its decided status. The
// WHERE status = 'pending' clause makes the update the concurrency arbiter:
// at most one of two simultaneous decisions lands, and the loser gets
// ErrRequestNotPending.
func (d *DB) UpdateRequestStatus(ctx context.Context, id uuid.UUID, decision string, reviewerID *uuid.UUID, notes string) (*models.ToolRequest, error) {
	query := `
		UPDATE tool_requests
		SET status = $1, admin_notes = $2, reviewed_by = $3, reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING ` + requestColumns

	req, err := scanRequest(d.Pool.QueryRow(ctx, query, decision, notes, reviewerID, id, models.StatusPending))
	if errors.Is(err, ErrRequestNotFound) {
		return nil, ErrRequestNotPending
	}
	return req, err
}

// DeleteRequest deletes a tool request by ID.
func (d *DB) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM tool_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrRequestNotFound
	}
	return nil
}
