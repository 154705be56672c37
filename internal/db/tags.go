package db

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"toolhub/internal/models"
)

// CreateTag creates a new tag. The case-insensitive unique index on name is
// the race arbiter: a conflict maps to ErrDuplicateTagName so callers can
// re-fetch the winner's row instead of failing.
func (d *DB) CreateTag(ctx context.Context, tag *models.Tag) error {
	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		RETURNING id, created_at
	`

	err := d.Pool.QueryRow(ctx, query, tag.Name).Scan(&tag.ID, &tag.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTagName
		}
		return err
	}
	return nil
}

// GetTagByID retrieves a tag by its ID.
func (d *DB) GetTagByID(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	query := `SELECT id, name, created_at FROM tags WHERE id = $1`

	var tag models.Tag
	err := d.Pool.QueryRow(ctx, query, id).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByName retrieves a tag by case-insensitive exact name match.
func (d *DB) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	query := `SELECT id, name, created_at FROM tags WHERE LOWER(name) = LOWER($1)`

	var tag models.Tag
	err := d.Pool.QueryRow(ctx, query, name).Scan(&tag.ID, &tag.Name, &tag.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTagNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags retrieves a page of tags with tool counts, alphabetically,
// optionally filtered by a name search, plus the total count.
func (d *DB) ListTags(ctx context.Context, query string, page, limit int) ([]models.Tag, int64, error) {
	where := ``
	var args []any
	if query != "" {
		args = append(args, "%"+query+"%")
		where = ` WHERE t.name ILIKE $1`
	}

	var total int64
	if err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM tags t`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	limitArg := strconv.Itoa(len(args))
	args = append(args, (page-1)*limit)
	offsetArg := strconv.Itoa(len(args))

	sql := `
		SELECT t.id, t.name, t.created_at, COUNT(tt.tool_id)
		FROM tags t
		LEFT JOIN tool_tags tt ON tt.tag_id = t.id` + where + `
		GROUP BY t.id
		ORDER BY t.name ASC
		LIMIT $` + limitArg + ` OFFSET $` + offsetArg

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt, &tag.ToolCount); err != nil {
			return nil, 0, err
		}
		tags = append(tags, tag)
	}
	return tags, total, rows.Err()
}

// UpdateTag renames a tag.
func (d *DB) UpdateTag(ctx context.Context, tag *models.Tag) error {
	query := `UPDATE tags SET name = $1 WHERE id = $2 RETURNING created_at`

	err := d.Pool.QueryRow(ctx, query, tag.Name, tag.ID).Scan(&tag.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrTagNotFound
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateTagName
		}
	}
	return err
}

// DeleteTag deletes a tag by ID. The RESTRICT foreign key on tool_tags
// blocks deletion while any tool still carries the tag.
func (d *DB) DeleteTag(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrTagInUse
		}
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTagNotFound
	}
	return nil
}
