package api

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkdeck/internal/db"
	"linkdeck/internal/middleware"
	"linkdeck/internal/models"
	"linkdeck/internal/validation"
)

const listLimit = 100

// CollectionHandler handles collection CRUD via the JSON API.
type CollectionHandler struct {
	db *db.DB
}

// NewCollectionHandler creates a new API collection handler.
func NewCollectionHandler(database *db.DB) *CollectionHandler {
	return &CollectionHandler{db: database}
}

// List returns public collections. With ?mine=true it returns the
// authenticated user's own collections instead, private ones included.
func (h *CollectionHandler) List(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	if c.Query("mine") == "true" {
		if user == nil {
			return jsonError(c, fiber.StatusUnauthorized, "Authentication required")
		}
		collections, err := h.db.ListCollectionsByUser(c.Context(), user.ID)
		if err != nil {
			return jsonError(c, fiber.StatusInternalServerError, "failed to fetch collections")
		}
		return jsonSuccess(c, collections)
	}

	collections, err := h.db.ListPublicCollections(c.Context(), nil, listLimit)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch collections")
	}

	return jsonSuccess(c, collections)
}

// Get returns a collection by slug, with its links in position order.
func (h *CollectionHandler) Get(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	summary, err := h.db.GetCollectionBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch collection")
	}

	isOwner := user != nil && user.ID == summary.UserID
	if !summary.IsPublic && !isOwner {
		return jsonError(c, fiber.StatusNotFound, "collection not found")
	}

	links, err := h.db.GetCollectionLinks(c.Context(), summary.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch links")
	}

	return jsonSuccess(c, fiber.Map{
		"collection": summary,
		"links":      links,
	})
}

// Create creates a new collection for the authenticated user.
func (h *CollectionHandler) Create(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input models.CreateCollectionInput
	if err := json.Unmarshal(c.Body(), &input); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if valid, msg := validation.ValidateTitle(input.Title, models.MaxCollectionTitleLen); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}
	if valid, msg := validation.ValidateDescription(input.Description); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	collection := &models.Collection{
		Title:       input.Title,
		Description: input.Description,
		IsPublic:    isPublic,
		UserID:      user.ID,
	}
	if err := h.db.CreateCollection(c.Context(), collection); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create collection")
	}

	return jsonCreated(c, collection)
}

// Delete removes one of the authenticated user's collections.
func (h *CollectionHandler) Delete(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	summary, err := h.db.GetCollectionBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch collection")
	}

	if err := h.db.DeleteCollection(c.Context(), summary.ID, user.ID); err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return jsonError(c, fiber.StatusNotFound, "collection not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete collection")
	}

	return jsonSuccess(c, fiber.Map{"deleted": true})
}
