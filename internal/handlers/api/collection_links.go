package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkdeck/internal/db"
	"linkdeck/internal/middleware"
	"linkdeck/internal/models"
	"linkdeck/internal/validation"
)

// CollectionLinkHandler manages link membership inside collections.
type CollectionLinkHandler struct {
	db *db.DB
}

// NewCollectionLinkHandler creates a new collection link handler.
func NewCollectionLinkHandler(database *db.DB) *CollectionLinkHandler {
	return &CollectionLinkHandler{db: database}
}

// ownedCollection resolves the :id param to one of the user's collections.
// A foreign collection reads as not found so its existence stays hidden.
func (h *CollectionLinkHandler) ownedCollection(c fiber.Ctx) (*models.Collection, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, jsonError(c, fiber.StatusBadRequest, "invalid collection id")
	}

	collection, err := h.db.GetCollectionByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return nil, jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return nil, jsonError(c, fiber.StatusInternalServerError, "failed to fetch collection")
	}

	user := middleware.CurrentUser(c)
	if collection.UserID != user.ID {
		return nil, jsonError(c, fiber.StatusNotFound, "collection not found")
	}

	return collection, nil
}

// Add attaches a link to a collection, creating the canonical link record
// if this URL has never been seen before. The link is appended at the end.
func (h *CollectionLinkHandler) Add(c fiber.Ctx) error {
	var input models.AddLinkInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateURL(input.URL); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateTitle(input.Title, models.MaxTitleLen); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateDescription(input.Description); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, _ := validation.ValidateOptionalURL(input.Favicon); !valid {
		return jsonError(c, fiber.StatusBadRequest, "favicon must be a valid http or https URL")
	}
	if !models.ValidStatus(input.Status) {
		return jsonError(c, fiber.StatusBadRequest, "status must be \"used\" or \"later\"")
	}

	collection, errResp := h.ownedCollection(c)
	if collection == nil {
		return errResp
	}

	entry, err := h.db.AddLinkToCollection(c.Context(), collection.ID, input)
	if err != nil {
		switch {
		case errors.Is(err, db.ErrLinkAlreadyInCollection):
			return jsonError(c, fiber.StatusConflict, "link is already in this collection")
		case errors.Is(err, db.ErrCollectionNotFound):
			return jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to add link")
	}

	return jsonCreated(c, entry)
}

// List returns the collection's links in position order.
func (h *CollectionLinkHandler) List(c fiber.Ctx) error {
	collection, errResp := h.ownedCollection(c)
	if collection == nil {
		return errResp
	}

	links, err := h.db.GetCollectionLinks(c.Context(), collection.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch links")
	}

	return jsonSuccess(c, links)
}

// Remove detaches a link from a collection. The canonical link record is
// kept; other collections may still reference it.
func (h *CollectionLinkHandler) Remove(c fiber.Ctx) error {
	collection, errResp := h.ownedCollection(c)
	if collection == nil {
		return errResp
	}

	linkID, err := uuid.Parse(c.Params("linkId"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid link id")
	}

	if err := h.db.RemoveLinkFromCollection(c.Context(), collection.ID, linkID); err != nil {
		if errors.Is(err, db.ErrLinkNotFound) {
			return jsonError(c, fiber.StatusNotFound, "link not in collection")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to remove link")
	}

	return jsonSuccess(c, fiber.Map{"removed": true})
}
