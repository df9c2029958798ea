package models

import (
	"time"

	"github.com/google/uuid"
)

// Per-membership status values. An empty status means "none".
const (
	StatusUsed  = "used"
	StatusLater = "later"
)

// ValidStatus reports whether s is an allowed membership status.
// The empty string is valid and means the owner has not marked the link.
func ValidStatus(s string) bool {
	return s == "" || s == StatusUsed || s == StatusLater
}

// CollectionLink records a link's membership in a collection. Position is
// assigned monotonically per collection; the same link can carry a different
// status in each collection it belongs to.
type CollectionLink struct {
	ID           uuid.UUID `json:"id"`
	CollectionID uuid.UUID `json:"collection_id"`
	LinkID       uuid.UUID `json:"link_id"`
	Position     int       `json:"order"`
	Status       *string   `json:"status"`
	CreatedAt    time.Time `json:"created_at"`

	// Populated on list queries.
	Link *Link `json:"link,omitempty"`
}
