package models

import (
	"time"

	"github.com/google/uuid"
)

// Field limits enforced at validation time and by the schema.
const (
	MaxTitleLen       = 500
	MaxDescriptionLen = 1000
)

// Link is the canonical record of a URL. There is exactly one Link per
// distinct URL; memberships in collections reference it by ID.
type Link struct {
	ID          uuid.UUID `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Favicon     string    `json:"favicon"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
