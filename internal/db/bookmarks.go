package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"linkdeck/internal/models"
)

// BookmarkCollection saves a collection for a user. Bookmarking a collection
// twice is a conflict; bookmarking a missing collection is NotFound.
func (d *DB) BookmarkCollection(ctx context.Context, userID, collectionID uuid.UUID) (*models.BookmarkedCollection, error) {
	bm := models.BookmarkedCollection{
		UserID:       userID,
		CollectionID: collectionID,
	}

	query := `
		INSERT INTO bookmarked_collections (user_id, collection_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := d.Pool.QueryRow(ctx, query, userID, collectionID).Scan(&bm.ID, &bm.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return nil, ErrAlreadyBookmarked
			case "23503":
				return nil, ErrCollectionNotFound
			}
		}
		return nil, err
	}
	return &bm, nil
}

// UnbookmarkCollection removes a collection bookmark. Removing an absent
// bookmark is a no-op, not an error.
func (d *DB) UnbookmarkCollection(ctx context.Context, userID, collectionID uuid.UUID) error {
	query := `DELETE FROM bookmarked_collections WHERE user_id = $1 AND collection_id = $2`
	_, err := d.Pool.Exec(ctx, query, userID, collectionID)
	return err
}

// IsCollectionBookmarked reports whether a user has bookmarked a collection.
func (d *DB) IsCollectionBookmarked(ctx context.Context, userID, collectionID uuid.UUID) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM bookmarked_collections WHERE user_id = $1 AND collection_id = $2)`
	err := d.Pool.QueryRow(ctx, query, userID, collectionID).Scan(&exists)
	return exists, err
}

// BookmarkLink saves an individual link for a user. Re-bookmarking an
// already-saved link updates its status in place instead of failing.
func (d *DB) BookmarkLink(ctx context.Context, userID, linkID uuid.UUID, status *string) (*models.BookmarkedLink, error) {
	bm := models.BookmarkedLink{
		UserID: userID,
		LinkID: linkID,
		Status: status,
	}

	query := `
		INSERT INTO bookmarked_links (user_id, link_id, status)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, link_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING id, created_at
	`
	err := d.Pool.QueryRow(ctx, query, userID, linkID, status).Scan(&bm.ID, &bm.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}
	return &bm, nil
}

// UnbookmarkLink removes a link bookmark. Idempotent like
// UnbookmarkCollection.
func (d *DB) UnbookmarkLink(ctx context.Context, userID, linkID uuid.UUID) error {
	query := `DELETE FROM bookmarked_links WHERE user_id = $1 AND link_id = $2`
	_, err := d.Pool.Exec(ctx, query, userID, linkID)
	return err
}

// GetBookmarkedLinks retrieves the links a user has bookmarked, newest
// bookmark first.
func (d *DB) GetBookmarkedLinks(ctx context.Context, userID uuid.UUID) ([]models.BookmarkedLink, error) {
	query := `
		SELECT bm.id, bm.user_id, bm.link_id, bm.status, bm.created_at
		FROM bookmarked_links bm
		WHERE bm.user_id = $1
		ORDER BY bm.created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []models.BookmarkedLink
	for rows.Next() {
		var bm models.BookmarkedLink
		if err := rows.Scan(&bm.ID, &bm.UserID, &bm.LinkID, &bm.Status, &bm.CreatedAt); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, bm)
	}

	return bookmarks, rows.Err()
}
