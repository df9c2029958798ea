package models

import (
	"time"

	"github.com/google/uuid"
)

// BookmarkedCollection is a user's saved reference to someone else's
// collection. Existence implies "bookmarked"; there is no extra state.
type BookmarkedCollection struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	CollectionID uuid.UUID `json:"collection_id"`
	CreatedAt    time.Time `json:"created_at"`
}

// BookmarkedLink is a user's saved reference to an individual link,
// optionally carrying a used/later status.
type BookmarkedLink struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	LinkID    uuid.UUID `json:"link_id"`
	Status    *string   `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
