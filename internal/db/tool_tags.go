package db

import (
	"context"

	"github.com/google/uuid"

	"toolhub/internal/models"
)

// LinkToolTag associates a tag with a tool. Returns true if a new join row
// was inserted, false if the pair was already linked. Foreign-key violations
// and other failures are returned as errors.
func (d *DB) LinkToolTag(ctx context.Context, toolID, tagID uuid.UUID) (bool, error) {
	query := `
		INSERT INTO tool_tags (tool_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (tool_id, tag_id) DO NOTHING
	`
	result, err := d.Pool.Exec(ctx, query, toolID, tagID)
	if err != nil {
		return false, err
	}
	return result.RowsAffected() > 0, nil
}

// UnlinkToolTag removes a tool-tag association. Removing a pair that is not
// linked is a no-op.
func (d *DB) UnlinkToolTag(ctx context.Context, toolID, tagID uuid.UUID) error {
	_, err := d.Pool.Exec(ctx, `DELETE FROM tool_tags WHERE tool_id = $1 AND tag_id = $2`, toolID, tagID)
	return err
}

// GetTagsForTool retrieves all tags linked to one tool, alphabetically.
func (d *DB) GetTagsForTool(ctx context.Context, toolID uuid.UUID) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.created_at
		FROM tags t
		JOIN tool_tags tt ON tt.tag_id = t.id
		WHERE tt.tool_id = $1
		ORDER BY t.name ASC
	`
	rows, err := d.Pool.Query(ctx, query, toolID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// AttachTags populates the Tags field of each tool in one query.
func (d *DB) AttachTags(ctx context.Context, tools []models.Tool) error {
	if len(tools) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(tools))
	for i := range tools {
		ids[i] = tools[i].ID
	}

	query := `
		SELECT tt.tool_id, t.id, t.name, t.created_at
		FROM tags t
		JOIN tool_tags tt ON tt.tag_id = t.id
		WHERE tt.tool_id = ANY($1)
		ORDER BY t.name ASC
	`
	rows, err := d.Pool.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	byTool := make(map[uuid.UUID][]models.Tag, len(tools))
	for rows.Next() {
		var toolID uuid.UUID
		var tag models.Tag
		if err := rows.Scan(&toolID, &tag.ID, &tag.Name, &tag.CreatedAt); err != nil {
			return err
		}
		byTool[toolID] = append(byTool[toolID], tag)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range tools {
		tags := byTool[tools[i].ID]
		if tags == nil {
			tags = []models.Tag{}
		}
		tools[i].Tags = tags
	}
	return nil
}
