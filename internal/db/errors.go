package db

import "errors"

// Domain-level database error sentinels.
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Link errors
	ErrLinkNotFound = errors.New("link not found")

	// Collection errors
	ErrCollectionNotFound = errors.New("collection not found")
	ErrSlugTaken          = errors.New("slug already exists")

	// Membership errors
	ErrLinkAlreadyInCollection = errors.New("link already exists in this collection")

	// Bookmark errors
	ErrAlreadyBookmarked = errors.New("already bookmarked")
)
