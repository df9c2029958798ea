package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/jackc/pgx/v5/pgxpool"

	"linkdeck/migrations"
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

// Ping verifies the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDemoData inserts a demo user with a few public collections for
// development. Skips anything that already exists.
func (d *DB) SeedDemoData(ctx context.Context) error {
	var userID string
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO users (sub, email, name)
		VALUES ('demo-user', 'demo@example.com', 'Demo User')
		ON CONFLICT (sub) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`).Scan(&userID)
	if err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}

	collections := []struct {
		title       string
		slug        string
		description string
	}{
		{"AI & ML Resources", "ai-ml-resources", "Curated machine learning reading"},
		{"Web Dev Tools", "web-dev-tools", "Tools worth bookmarking"},
		{"Design Inspiration", "design-inspiration", "Sites with great design"},
	}

	query := `
		INSERT INTO collections (title, slug, description, is_public, user_id)
		VALUES ($1, $2, $3, TRUE, $4)
		ON CONFLICT (slug) DO NOTHING
	`

	for _, c := range collections {
		if _, err := d.Pool.Exec(ctx, query, c.title, c.slug, c.description, userID); err != nil {
			return fmt.Errorf("failed to seed collection %s: %w", c.slug, err)
		}
	}

	return nil
}
