package email

import (
	"context"
	"log"

	"github.com/google/uuid"

	"linkdeck/internal/config"
	"linkdeck/internal/models"
)

// UserGetter looks up users for notification recipients.
type UserGetter interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*models.User, error)
}

// Notifier sends email notifications for bookmark events.
type Notifier struct {
	service   *Service
	templates *Templates
	db        UserGetter
}

// NewNotifier creates a new email notifier.
func NewNotifier(cfg *config.Config, db UserGetter) *Notifier {
	return &Notifier{
		service:   NewService(cfg),
		templates: NewTemplates(cfg),
		db:        db,
	}
}

// NotifyCollectionBookmarked tells a collection owner that someone bookmarked
// their collection. Owners bookmarking their own collections are skipped.
func (n *Notifier) NotifyCollectionBookmarked(ctx context.Context, collection *models.Collection, bookmarker *models.User) {
	if !n.service.IsEnabled() {
		return
	}

	if collection.UserID == bookmarker.ID {
		return
	}

	owner, err := n.db.GetUserByID(ctx, collection.UserID)
	if err != nil {
		log.Printf("Failed to get collection owner: %v", err)
		return
	}

	if owner.Email == "" {
		return
	}

	subject, htmlBody, textBody := n.templates.CollectionBookmarked(collection, bookmarker)
	n.service.SendAsync([]string{owner.Email}, subject, htmlBody, textBody)
}
