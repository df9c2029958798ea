package db

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkdeck/internal/models"
)

// linkColumns is the standard column list for link queries.
const linkColumns = `id, url, title, description, favicon, created_at, updated_at`

// scanLink scans a row into a Link struct.
func scanLink(row pgx.Row) (*models.Link, error) {
	var link models.Link
	err := row.Scan(
		&link.ID,
		&link.URL,
		&link.Title,
		&link.Description,
		&link.Favicon,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// scanLinks scans multiple rows into a slice of Links.
func scanLinks(rows pgx.Rows) ([]models.Link, error) {
	defer rows.Close()

	var links []models.Link
	for rows.Next() {
		var link models.Link
		if err := rows.Scan(
			&link.ID,
			&link.URL,
			&link.Title,
			&link.Description,
			&link.Favicon,
			&link.CreatedAt,
			&link.UpdatedAt,
		); err != nil {
			return nil, err
		}
		links = append(links, link)
	}

	return links, rows.Err()
}

// GetLinkByID retrieves a link by its ID.
func (d *DB) GetLinkByID(ctx context.Context, id uuid.UUID) (*models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE id = $1`
	return scanLink(d.Pool.QueryRow(ctx, query, id))
}

// GetLinkByURL retrieves the canonical link for a URL, if one exists.
func (d *DB) GetLinkByURL(ctx context.Context, url string) (*models.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE url = $1`
	return scanLink(d.Pool.QueryRow(ctx, query, url))
}

// UpdateLinkMetadata replaces a link's derived fields after a refresh.
func (d *DB) UpdateLinkMetadata(ctx context.Context, linkID uuid.UUID, title, description, favicon string) error {
	query := `
		UPDATE links
		SET title = $1, description = $2, favicon = $3, updated_at = NOW()
		WHERE id = $4
	`
	result, err := d.Pool.Exec(ctx, query, title, description, favicon, linkID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// GetLinksNeedingRefresh retrieves links whose metadata is stale or was never
// fully derived (no favicon), oldest first.
func (d *DB) GetLinksNeedingRefresh(ctx context.Context, maxAge time.Duration, limit int) ([]models.Link, error) {
	cutoff := time.Now().Add(-maxAge)
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE favicon = '' OR updated_at < $1
		ORDER BY updated_at ASC
		LIMIT $2
	`

	rows, err := d.Pool.Query(ctx, query, cutoff, limit)
	if err != nil {
		return nil, err
	}
	return scanLinks(rows)
}
