package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkdeck/internal/db"
	"linkdeck/internal/email"
	"linkdeck/internal/middleware"
	"linkdeck/internal/models"
)

// BookmarkHandler handles bookmarking of collections and individual links.
type BookmarkHandler struct {
	db       *db.DB
	notifier *email.Notifier
}

// NewBookmarkHandler creates a new bookmark handler.
func NewBookmarkHandler(database *db.DB, notifier *email.Notifier) *BookmarkHandler {
	return &BookmarkHandler{db: database, notifier: notifier}
}

// ListCollections returns the user's bookmarked collections.
func (h *BookmarkHandler) ListCollections(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	collections, err := h.db.ListBookmarkedCollections(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch bookmarks")
	}

	return jsonSuccess(c, collections)
}

// BookmarkCollection saves a collection to the user's bookmarks.
func (h *BookmarkHandler) BookmarkCollection(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	collectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	bookmark, err := h.db.BookmarkCollection(c.Context(), user.ID, collectionID)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrAlreadyBookmarked):
			return jsonError(c, fiber.StatusConflict, "collection is already bookmarked")
		case errors.Is(err, db.ErrCollectionNotFound):
			return jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to bookmark collection")
	}

	if h.notifier != nil {
		if collection, err := h.db.GetCollectionByID(c.Context(), collectionID); err == nil {
			h.notifier.NotifyCollectionBookmarked(c.Context(), collection, user)
		}
	}

	return jsonCreated(c, bookmark)
}

// UnbookmarkCollection removes a collection bookmark. Removing a bookmark
// that does not exist is not an error.
func (h *BookmarkHandler) UnbookmarkCollection(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	collectionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	if err := h.db.UnbookmarkCollection(c.Context(), user.ID, collectionID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove bookmark")
	}

	return jsonSuccess(c, fiber.Map{"removed": true})
}

// ListLinks returns the user's bookmarked links.
func (h *BookmarkHandler) ListLinks(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	links, err := h.db.GetBookmarkedLinks(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch bookmarks")
	}

	return jsonSuccess(c, links)
}

// BookmarkLink saves an individual link, optionally with a used/later
// status. Bookmarking an already bookmarked link updates its status.
func (h *BookmarkHandler) BookmarkLink(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid link id")
	}

	var body struct {
		Status string `json:"status"`
	}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &body); err != nil {
			return jsonError(c, fiber.StatusBadRequest, "invalid request body")
		}
	}

	if !models.ValidStatus(body.Status) {
		return jsonError(c, fiber.StatusBadRequest, "status must be \"used\" or \"later\"")
	}

	var status *string
	if body.Status != "" {
		status = &body.Status
	}

	bookmark, err := h.db.BookmarkLink(c.Context(), user.ID, linkID, status)
	if err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "link not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to bookmark link")
	}

	return jsonCreated(c, bookmark)
}

// UnbookmarkLink removes a link bookmark. Idempotent.
func (h *BookmarkHandler) UnbookmarkLink(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	linkID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid link id")
	}

	if err := h.db.UnbookmarkLink(c.Context(), user.ID, linkID); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove bookmark")
	}

	return jsonSuccess(c, fiber.Map{"removed": true})
}
