package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"linkdeck/internal/config"
	"linkdeck/internal/db"
	"linkdeck/internal/middleware"
	"linkdeck/internal/models"
	"linkdeck/internal/validation"
)

const publicListLimit = 60

// CollectionHandler serves the HTML pages for browsing and managing
// collections.
type CollectionHandler struct {
	db  *db.DB
	cfg *config.Config
}

// NewCollectionHandler creates a new collection page handler.
func NewCollectionHandler(database *db.DB, cfg *config.Config) *CollectionHandler {
	return &CollectionHandler{db: database, cfg: cfg}
}

// Index renders the home page with recently updated public collections.
func (h *CollectionHandler) Index(c fiber.Ctx) error {
	collections, err := h.db.ListPublicCollections(c.Context(), nil, publicListLimit)
	if err != nil {
		return err
	}

	return c.Render("index", fiber.Map{
		"Title":       h.cfg.SiteTitle,
		"Tagline":     h.cfg.SiteTagline,
		"User":        middleware.CurrentUser(c),
		"Collections": collections,
	})
}

// Show renders a single collection with its links in position order.
// Private collections are only visible to their owner.
func (h *CollectionHandler) Show(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	summary, err := h.db.GetCollectionBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "collection not found")
		}
		return err
	}

	isOwner := user != nil && user.ID == summary.UserID
	if !summary.IsPublic && !isOwner {
		// Hide the existence of private collections.
		return fiber.NewError(fiber.StatusNotFound, "collection not found")
	}

	links, err := h.db.GetCollectionLinks(c.Context(), summary.ID)
	if err != nil {
		return err
	}

	bookmarked := false
	if user != nil && !isOwner {
		bookmarked, err = h.db.IsCollectionBookmarked(c.Context(), user.ID, summary.ID)
		if err != nil {
			return err
		}
	}

	return c.Render("collection", fiber.Map{
		"Title":      summary.Title,
		"User":       user,
		"Collection": summary,
		"Links":      links,
		"IsOwner":    isOwner,
		"Bookmarked": bookmarked,
	})
}

// Me renders the signed-in user's own and bookmarked collections.
func (h *CollectionHandler) Me(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	own, err := h.db.ListCollectionsByUser(c.Context(), user.ID)
	if err != nil {
		return err
	}

	bookmarked, err := h.db.ListBookmarkedCollections(c.Context(), user.ID)
	if err != nil {
		return err
	}

	return c.Render("me", fiber.Map{
		"Title":      "My collections",
		"User":       user,
		"Own":        own,
		"Bookmarked": bookmarked,
	})
}

// New renders the collection creation form.
func (h *CollectionHandler) New(c fiber.Ctx) error {
	return c.Render("new_collection", fiber.Map{
		"Title": "New collection",
		"User":  middleware.CurrentUser(c),
	})
}

// Create handles the collection creation form post.
func (h *CollectionHandler) Create(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	title := c.FormValue("title")
	description := c.FormValue("description")
	isPublic := c.FormValue("is_public") != ""

	if valid, msg := validation.ValidateTitle(title, models.MaxCollectionTitleLen); !valid {
		return c.Status(fiber.StatusBadRequest).Render("new_collection", fiber.Map{
			"Title": "New collection",
			"User":  user,
			"Error": msg,
		})
	}
	if valid, msg := validation.ValidateDescription(description); !valid {
		return c.Status(fiber.StatusBadRequest).Render("new_collection", fiber.Map{
			"Title": "New collection",
			"User":  user,
			"Error": msg,
		})
	}

	collection := &models.Collection{
		Title:       title,
		Description: description,
		IsPublic:    isPublic,
		UserID:      user.ID,
	}
	if err := h.db.CreateCollection(c.Context(), collection); err != nil {
		return err
	}

	return c.Redirect().To("/c/" + collection.Slug)
}

// Delete removes one of the user's own collections.
func (h *CollectionHandler) Delete(c fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	summary, err := h.db.GetCollectionBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "collection not found")
		}
		return err
	}

	if err := h.db.DeleteCollection(c.Context(), summary.ID, user.ID); err != nil {
		if errors.Is(err, db.ErrCollectionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "collection not found")
		}
		return err
	}

	return c.Redirect().To("/me")
}

// Login renders the login page.
func (h *CollectionHandler) Login(c fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Sign in",
		"User":  middleware.CurrentUser(c),
	})
}
