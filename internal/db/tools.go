package db

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"toolhub/internal/models"
)

// toolColumns is the standard column list for tool queries.
const toolColumns = `id, name, description, url, created_at, updated_at,
	health_status, health_checked_at, health_error`

// scanTool scans a row into a Tool struct.
func scanTool(row pgx.Row) (*models.Tool, error) {
	var tool models.Tool
	err := row.Scan(
		&tool.ID,
		&tool.Name,
		&tool.Description,
		&tool.URL,
		&tool.CreatedAt,
		&tool.UpdatedAt,
		&tool.HealthStatus,
		&tool.HealthCheckedAt,
		&tool.HealthError,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrToolNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tool, nil
}

// scanTools scans multiple rows into a slice of Tools.
func scanTools(rows pgx.Rows) ([]models.Tool, error) {
	defer rows.Close()

	var tools []models.Tool
	for rows.Next() {
		var tool models.Tool
		if err := rows.Scan(
			&tool.ID,
			&tool.Name,
			&tool.Description,
			&tool.URL,
			&tool.CreatedAt,
			&tool.UpdatedAt,
			&tool.HealthStatus,
			&tool.HealthCheckedAt,
			&tool.HealthError,
		); err != nil {
			return nil, err
		}
		tools = append(tools, tool)
	}

	return tools, rows.Err()
}

// CreateTool creates a new tool. The unique constraint on url is the
// duplicate guard; a conflict maps to ErrDuplicateToolURL.
func (d *DB) CreateTool(ctx context.Context, tool *models.Tool) error {
	query := `
		INSERT INTO tools (name, description, url)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at, health_status
	`

	err := d.Pool.QueryRow(ctx, query,
		tool.Name,
		tool.Description,
		tool.URL,
	).Scan(&tool.ID, &tool.CreatedAt, &tool.UpdatedAt, &tool.HealthStatus)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToolURL
		}
		return err
	}
	return nil
}

// GetToolByID retrieves a tool by its ID.
func (d *DB) GetToolByID(ctx context.Context, id uuid.UUID) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE id = $1`
	return scanTool(d.Pool.QueryRow(ctx, query, id))
}

// GetToolByURL retrieves a tool by its unique URL.
func (d *DB) GetToolByURL(ctx context.Context, url string) (*models.Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools WHERE url = $1`
	return scanTool(d.Pool.QueryRow(ctx, query, url))
}

// ToolFilter narrows a tool listing.
type ToolFilter struct {
	Query string // ILIKE match against name and description
	Tag   string // only tools linked to this tag name (normalized)
	Page  int
	Limit int
}

// ListTools retrieves a page of tools plus the total count for the filter.
// Tags are not populated here; use AttachTags on the result.
func (d *DB) ListTools(ctx context.Context, filter ToolFilter) ([]models.Tool, int64, error) {
	where := ` WHERE TRUE`
	var args []any

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern)
		n := strconv.Itoa(len(args))
		where += ` AND (name ILIKE $` + n + ` OR description ILIKE $` + n + `)`
	}

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		where += ` AND id IN (
			SELECT tt.tool_id FROM tool_tags tt
			JOIN tags t ON t.id = tt.tag_id
			WHERE LOWER(t.name) = LOWER($` + strconv.Itoa(len(args)) + `)
		)`
	}

	var total int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tools`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit)
	limitArg := strconv.Itoa(len(args))
	args = append(args, (filter.Page-1)*filter.Limit)
	offsetArg := strconv.Itoa(len(args))

	sql := `SELECT ` + toolColumns + ` FROM tools` + where +
		` ORDER BY name ASC LIMIT $` + limitArg + ` OFFSET $` + offsetArg

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}

	tools, err := scanTools(rows)
	if err != nil {
		return nil, 0, err
	}
	return tools, total, nil
}

// UpdateTool updates a tool's name, description, and URL.
func (d *DB) UpdateTool(ctx context.Context, tool *models.Tool) error {
	query := `
		UPDATE tools
		SET name = $1, description = $2, url = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query, tool.Name, tool.Description, tool.URL, tool.ID).Scan(&tool.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrToolNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToolURL
		}
	}
	return err
}

// DeleteTool deletes a tool by ID. Join rows cascade.
func (d *DB) DeleteTool(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM tools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrToolNotFound
	}
	return nil
}

// GetToolsNeedingHealthCheck retrieves tools whose URL has not been checked
// recently, oldest checks first.
func (d *DB) GetToolsNeedingHealthCheck(ctx context.Context, maxAge time.Duration, limit int) ([]models.Tool, error) {
	cutoff := time.Now().Add(-maxAge)
	query := `
		SELECT ` + toolColumns + `
		FROM tools
		WHERE health_checked_at IS NULL OR health_checked_at < $1
		ORDER BY health_checked_at NULLS FIRST
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return scanTools(rows)
}

// UpdateToolHealthStatus updates the health status for a tool.
func (d *DB) UpdateToolHealthStatus(ctx context.Context, toolID uuid.UUID, status string, errorMsg *string) error {
	query := `
		UPDATE tools
		SET health_status = $1, health_checked_at = NOW(), health_error = $2
		WHERE id = $3
	`
	result, err := d.Pool.Exec(ctx, query, status, errorMsg, toolID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrToolNotFound
	}
	return nil
}
