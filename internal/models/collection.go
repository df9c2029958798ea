package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxCollectionTitleLen bounds collection titles (distinct from link titles).
const MaxCollectionTitleLen = 200

// Collection is a named, ordered grouping of links owned by a user.
// The slug is globally unique and identifies the collection in URLs.
type Collection struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Slug        string    `json:"slug"`
	IsPublic    bool      `json:"is_public"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CollectionSummary is a collection with the owner and count fields the
// listing pages need, so one query can feed a card grid.
type CollectionSummary struct {
	Collection
	OwnerName     string `json:"owner_name"`
	OwnerPicture  string `json:"owner_picture"`
	LinkCount     int64  `json:"link_count"`
	BookmarkCount int64  `json:"bookmark_count"`
}
