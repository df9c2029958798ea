package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"linkdeck/internal/models"
	"linkdeck/internal/validation"
)

// collectionColumns is the standard column list for collection queries.
const collectionColumns = `id, title, description, slug, is_public, user_id, created_at, updated_at`

// scanCollection scans a row into a Collection struct.
func scanCollection(row pgx.Row) (*models.Collection, error) {
	var c models.Collection
	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.Description,
		&c.Slug,
		&c.IsPublic,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCollectionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// summaryColumns joins a collection with its owner and membership counts.
const summaryColumns = `
	c.id, c.title, c.description, c.slug, c.is_public, c.user_id, c.created_at, c.updated_at,
	u.name, u.picture,
	(SELECT COUNT(*) FROM collection_links cl WHERE cl.collection_id = c.id),
	(SELECT COUNT(*) FROM bookmarked_collections bc WHERE bc.collection_id = c.id)`

// scanSummaries scans joined rows into CollectionSummary values.
func scanSummaries(rows pgx.Rows) ([]models.CollectionSummary, error) {
	defer rows.Close()

	var summaries []models.CollectionSummary
	for rows.Next() {
		var s models.CollectionSummary
		if err := rows.Scan(
			&s.ID,
			&s.Title,
			&s.Description,
			&s.Slug,
			&s.IsPublic,
			&s.UserID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&s.OwnerName,
			&s.OwnerPicture,
			&s.LinkCount,
			&s.BookmarkCount,
		); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// slugAttempts bounds the sequential-suffix search before falling back to a
// random suffix.
const slugAttempts = 5

// CreateCollection creates a collection for the given owner, deriving a
// unique slug from the title. Slug collisions are retried with numeric
// suffixes ("my-list-2") and finally a random suffix, so creation only fails
// on a genuine database error.
func (d *DB) CreateCollection(ctx context.Context, c *models.Collection) error {
	base := validation.Slugify(c.Title)

	for attempt := 0; ; attempt++ {
		slug := base
		switch {
		case attempt == 0:
			// base slug as-is
		case attempt < slugAttempts:
			slug = fmt.Sprintf("%s-%d", base, attempt+1)
		default:
			slug = fmt.Sprintf("%s-%s", base, uuid.NewString()[:8])
		}

		err := d.insertCollection(ctx, c, slug)
		if errors.Is(err, ErrSlugTaken) && attempt < slugAttempts {
			continue
		}
		return err
	}
}

func (d *DB) insertCollection(ctx context.Context, c *models.Collection, slug string) error {
	query := `
		INSERT INTO collections (title, description, slug, is_public, user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		c.Title,
		c.Description,
		slug,
		c.IsPublic,
		c.UserID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlugTaken
		}
		return err
	}

	c.Slug = slug
	return nil
}

// GetCollectionByID retrieves a collection by its ID.
func (d *DB) GetCollectionByID(ctx context.Context, id uuid.UUID) (*models.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`
	return scanCollection(d.Pool.QueryRow(ctx, query, id))
}

// GetCollectionBySlug retrieves a collection with owner and counts by slug.
func (d *DB) GetCollectionBySlug(ctx context.Context, slug string) (*models.CollectionSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM collections c
		JOIN users u ON u.id = c.user_id
		WHERE c.slug = $1
	`
	rows, err := d.Pool.Query(ctx, query, slug)
	if err != nil {
		return nil, err
	}
	summaries, err := scanSummaries(rows)
	if err != nil {
		return nil, err
	}
	if len(summaries) == 0 {
		return nil, ErrCollectionNotFound
	}
	return &summaries[0], nil
}

// ListPublicCollections retrieves the most recently updated public
// collections, optionally restricted to one owner.
func (d *DB) ListPublicCollections(ctx context.Context, ownerID *uuid.UUID, limit int) ([]models.CollectionSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM collections c
		JOIN users u ON u.id = c.user_id
		WHERE c.is_public AND ($1::uuid IS NULL OR c.user_id = $1)
		ORDER BY c.updated_at DESC
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, ownerID, limit)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// ListCollectionsByUser retrieves all of a user's own collections, public or
// not, most recently updated first.
func (d *DB) ListCollectionsByUser(ctx context.Context, userID uuid.UUID) ([]models.CollectionSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM collections c
		JOIN users u ON u.id = c.user_id
		WHERE c.user_id = $1
		ORDER BY c.updated_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// ListBookmarkedCollections retrieves the collections a user has bookmarked,
// most recently bookmarked first.
func (d *DB) ListBookmarkedCollections(ctx context.Context, userID uuid.UUID) ([]models.CollectionSummary, error) {
	query := `
		SELECT ` + summaryColumns + `
		FROM bookmarked_collections bm
		JOIN collections c ON c.id = bm.collection_id
		JOIN users u ON u.id = c.user_id
		WHERE bm.user_id = $1
		ORDER BY bm.created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	return scanSummaries(rows)
}

// DeleteCollection deletes a collection owned by the given user. Memberships
// and bookmarks go with it via ON DELETE CASCADE.
func (d *DB) DeleteCollection(ctx context.Context, id, ownerID uuid.UUID) error {
	query := `DELETE FROM collections WHERE id = $1 AND user_id = $2`
	result, err := d.Pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCollectionNotFound
	}
	return nil
}
