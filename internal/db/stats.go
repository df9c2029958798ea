package db

import "context"

// Stats holds aggregate row counts for the metrics collector.
type Stats struct {
	Users               int64
	Collections         int64
	PublicCollections   int64
	Links               int64
	CollectionBookmarks int64
	LinkBookmarks       int64
}

// GetStats reads aggregate counts in a single round trip. Called on every
// Prometheus scrape, so it stays to cheap COUNTs.
func (d *DB) GetStats(ctx context.Context) (*Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM collections),
			(SELECT COUNT(*) FROM collections WHERE is_public),
			(SELECT COUNT(*) FROM links),
			(SELECT COUNT(*) FROM bookmarked_collections),
			(SELECT COUNT(*) FROM bookmarked_links)
	`
	var s Stats
	err := d.Pool.QueryRow(ctx, query).Scan(
		&s.Users,
		&s.Collections,
		&s.PublicCollections,
		&s.Links,
		&s.CollectionBookmarks,
		&s.LinkBookmarks,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
