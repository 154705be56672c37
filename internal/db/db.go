package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"toolhub/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedTags inserts the given tag names if absent. Used by the optional
// seed.yaml provisioning at startup.
func (d *DB) SeedTags(ctx context.Context, names []string) error {
	query := `
		INSERT INTO tags (name)
		VALUES ($1)
		ON CONFLICT DO NOTHING
	`
	for _, name := range names {
		if _, err := d.Pool.Exec(ctx, query, name); err != nil {
			return fmt.Errorf("failed to seed tag %s: %w", name, err)
		}
	}
	return nil
}

// SeedTool inserts a tool with its tag links if no tool with the URL exists.
func (d *DB) SeedTool(ctx context.Context, name, url, description string, tagNames []string) error {
	var toolID string
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO tools (name, url, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, name, url, description).Scan(&toolID)
	if err != nil {
		// No row returned means the tool already existed; leave it alone.
		return nil
	}

	for _, tagName := range tagNames {
		_, err := d.Pool.Exec(ctx, `
			INSERT INTO tool_tags (tool_id, tag_id)
			SELECT $1, id FROM tags WHERE LOWER(name) = LOWER($2)
			ON CONFLICT DO NOTHING
		`, toolID, tagName)
		if err != nil {
			return fmt.Errorf("failed to seed tag link %s: %w", tagName, err)
		}
	}
	return nil
}
