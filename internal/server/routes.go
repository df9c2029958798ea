package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkdeck/internal/db"
	"linkdeck/internal/email"
	"linkdeck/internal/handlers"
	"linkdeck/internal/handlers/api"
	"linkdeck/internal/metadata"
	"linkdeck/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, notifier *email.Notifier) error {
	authMiddleware := middleware.NewAuthMiddleware(s.SessionStore, database)

	// Page handlers
	collectionHandler := handlers.NewCollectionHandler(database, s.Cfg)
	probeHandler := handlers.NewProbeHandler(database)

	// API handlers
	metadataHandler := api.NewMetadataHandler(metadata.New())
	apiCollectionHandler := api.NewCollectionHandler(database)
	collectionLinkHandler := api.NewCollectionLinkHandler(database)
	bookmarkHandler := api.NewBookmarkHandler(database, notifier)

	// Auth routes - only register when OIDC is configured so local
	// development works without a provider.
	if s.Cfg.OIDCIssuer != "" {
		authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
		if err != nil {
			return err
		}
		s.App.Get("/auth/login", authHandler.Login)
		s.App.Get("/auth/callback", authHandler.Callback)
		s.App.Get("/auth/logout", authHandler.Logout)
	} else {
		log.Println("OIDC authentication is disabled. Set OIDC_ISSUER to enable.")
	}

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Public pages
	s.App.Get("/", authMiddleware.OptionalAuth, collectionHandler.Index)
	s.App.Get("/login", authMiddleware.OptionalAuth, collectionHandler.Login)
	s.App.Get("/c/:slug", authMiddleware.OptionalAuth, collectionHandler.Show)

	// Authenticated pages
	s.App.Get("/me", authMiddleware.RequireAuth, collectionHandler.Me)
	s.App.Get("/collections/new", authMiddleware.RequireAuth, collectionHandler.New)
	s.App.Post("/collections", authMiddleware.RequireAuth, collectionHandler.Create)
	s.App.Post("/c/:slug/delete", authMiddleware.RequireAuth, collectionHandler.Delete)

	// JSON API
	apiGroup := s.App.Group("/api")

	apiGroup.Post("/metadata", authMiddleware.RequireAuthAPI, metadataHandler.Extract)

	apiGroup.Get("/collections", authMiddleware.OptionalAuth, apiCollectionHandler.List)
	apiGroup.Post("/collections", authMiddleware.RequireAuthAPI, apiCollectionHandler.Create)
	apiGroup.Get("/collections/:slug", authMiddleware.OptionalAuth, apiCollectionHandler.Get)
	apiGroup.Delete("/collections/:slug", authMiddleware.RequireAuthAPI, apiCollectionHandler.Delete)

	apiGroup.Get("/collections/id/:id/links", authMiddleware.RequireAuthAPI, collectionLinkHandler.List)
	apiGroup.Post("/collections/id/:id/links", authMiddleware.RequireAuthAPI, collectionLinkHandler.Add)
	apiGroup.Delete("/collections/id/:id/links/:linkId", authMiddleware.RequireAuthAPI, collectionLinkHandler.Remove)

	apiGroup.Get("/bookmarks/collections", authMiddleware.RequireAuthAPI, bookmarkHandler.ListCollections)
	apiGroup.Post("/bookmarks/collections/:id", authMiddleware.RequireAuthAPI, bookmarkHandler.BookmarkCollection)
	apiGroup.Delete("/bookmarks/collections/:id", authMiddleware.RequireAuthAPI, bookmarkHandler.UnbookmarkCollection)

	apiGroup.Get("/bookmarks/links", authMiddleware.RequireAuthAPI, bookmarkHandler.ListLinks)
	apiGroup.Post("/bookmarks/links/:id", authMiddleware.RequireAuthAPI, bookmarkHandler.BookmarkLink)
	apiGroup.Delete("/bookmarks/links/:id", authMiddleware.RequireAuthAPI, bookmarkHandler.UnbookmarkLink)

	return nil
}
