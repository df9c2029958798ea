package jobs

import (
	"context"
	"log"
	"time"

	"linkdeck/internal/db"
	"linkdeck/internal/metadata"
	"linkdeck/internal/validation"
)

// MetadataRefresher periodically re-extracts metadata for stale links,
// picking up changed titles and missing favicons.
type MetadataRefresher struct {
	db        *db.DB
	extractor *metadata.Extractor
	interval  time.Duration
	maxAge    time.Duration
}

// NewMetadataRefresher creates a new metadata refresher.
func NewMetadataRefresher(database *db.DB, interval, maxAge time.Duration) *MetadataRefresher {
	return &MetadataRefresher{
		db:        database,
		extractor: metadata.New(),
		interval:  interval,
		maxAge:    maxAge,
	}
}

// Start begins the background refresh loop.
func (r *MetadataRefresher) Start(ctx context.Context) {
	log.Printf("Metadata refresher started (interval: %v, maxAge: %v)", r.interval, r.maxAge)

	// Run immediately on start
	r.refreshAll(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Metadata refresher stopped")
			return
		case <-ticker.C:
			r.refreshAll(ctx)
		}
	}
}

// refreshAll re-extracts metadata for links past the staleness cutoff.
func (r *MetadataRefresher) refreshAll(ctx context.Context) {
	links, err := r.db.GetLinksNeedingRefresh(ctx, r.maxAge, 50)
	if err != nil {
		log.Printf("Metadata refresher: failed to get links: %v", err)
		return
	}

	if len(links) == 0 {
		return
	}

	log.Printf("Metadata refresher: refreshing %d links", len(links))

	for _, link := range links {
		// Check context before each link
		select {
		case <-ctx.Done():
			return
		default:
		}

		// Stored URLs may point at internal hosts after DNS changes;
		// validate before fetching to prevent SSRF.
		if valid, msg := validation.ValidateURLForFetch(link.URL); !valid {
			log.Printf("Metadata refresher: skipping %s: %s", link.URL, msg)
			continue
		}

		meta, err := r.extractor.Extract(ctx, link.URL)
		if err != nil {
			log.Printf("Metadata refresher: failed to extract %s: %v", link.URL, err)
			continue
		}

		if err := r.db.UpdateLinkMetadata(ctx, link.ID, meta.Title, meta.Description, meta.Favicon); err != nil {
			log.Printf("Metadata refresher: failed to update %s: %v", link.URL, err)
			continue
		}

		// Delay between fetches to avoid overwhelming external servers
		time.Sleep(1 * time.Second)
	}
}
