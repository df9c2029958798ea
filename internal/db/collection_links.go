package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"linkdeck/internal/models"
)

// AddLinkToCollection attaches a URL to a collection. The link is resolved
// to its canonical record by URL (created if missing), the membership gets
// the next position in the collection, and the collection's updated_at is
// refreshed. The whole sequence runs in one transaction: the unique indexes
// on links.url and (collection_id, link_id) arbitrate concurrent writers, so
// the losing request surfaces ErrLinkAlreadyInCollection instead of a
// duplicate row.
func (d *DB) AddLinkToCollection(ctx context.Context, collectionID uuid.UUID, input models.AddLinkInput) (*models.CollectionLink, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// The collection must exist before anything is created.
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM collections WHERE id = $1)`, collectionID).Scan(&exists); err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrCollectionNotFound
	}

	// Find-or-create the canonical link. The no-op DO UPDATE makes RETURNING
	// yield the existing row when another writer got there first.
	var link models.Link
	err = tx.QueryRow(ctx, `
		INSERT INTO links (url, title, description, favicon)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
		RETURNING `+linkColumns,
		input.URL,
		input.Title,
		input.Description,
		input.Favicon,
	).Scan(
		&link.ID,
		&link.URL,
		&link.Title,
		&link.Description,
		&link.Favicon,
		&link.CreatedAt,
		&link.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	var status *string
	if input.Status != "" {
		status = &input.Status
	}

	cl := models.CollectionLink{
		CollectionID: collectionID,
		LinkID:       link.ID,
		Status:       status,
		Link:         &link,
	}

	// Next ordinal position; the first link in a collection gets 0.
	err = tx.QueryRow(ctx, `
		INSERT INTO collection_links (collection_id, link_id, position, status)
		SELECT $1, $2, COALESCE(MAX(position) + 1, 0), $3
		FROM collection_links
		WHERE collection_id = $1
		RETURNING id, position, created_at
	`, collectionID, link.ID, status).Scan(&cl.ID, &cl.Position, &cl.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrLinkAlreadyInCollection
		}
		return nil, err
	}

	if _, err := tx.Exec(ctx, `UPDATE collections SET updated_at = NOW() WHERE id = $1`, collectionID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return &cl, nil
}

// GetCollectionLinks retrieves a collection's memberships joined with their
// links, in display order (position ascending).
func (d *DB) GetCollectionLinks(ctx context.Context, collectionID uuid.UUID) ([]models.CollectionLink, error) {
	query := `
		SELECT cl.id, cl.collection_id, cl.link_id, cl.position, cl.status, cl.created_at,
			` + prefixedLinkColumns("l") + `
		FROM collection_links cl
		JOIN links l ON l.id = cl.link_id
		WHERE cl.collection_id = $1
		ORDER BY cl.position ASC
	`
	rows, err := d.Pool.Query(ctx, query, collectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []models.CollectionLink
	for rows.Next() {
		var cl models.CollectionLink
		var link models.Link
		if err := rows.Scan(
			&cl.ID,
			&cl.CollectionID,
			&cl.LinkID,
			&cl.Position,
			&cl.Status,
			&cl.CreatedAt,
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
		cl.Link = &link
		memberships = append(memberships, cl)
	}

	return memberships, rows.Err()
}

// RemoveLinkFromCollection detaches a link from a collection and refreshes
// the collection's updated_at. Positions of the remaining links are left
// untouched; ordering stays monotonic.
func (d *DB) RemoveLinkFromCollection(ctx context.Context, collectionID, linkID uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM collection_links WHERE collection_id = $1 AND link_id = $2`, collectionID, linkID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrLinkNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE collections SET updated_at = NOW() WHERE id = $1`, collectionID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// prefixedLinkColumns qualifies the link column list with a table alias for
// join queries.
func prefixedLinkColumns(alias string) string {
	return alias + `.id, ` + alias + `.url, ` + alias + `.title, ` + alias + `.description, ` +
		alias + `.favicon, ` + alias + `.created_at, ` + alias + `.updated_at`
}
