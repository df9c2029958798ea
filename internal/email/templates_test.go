package email

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"linkdeck/internal/config"
	"linkdeck/internal/models"
)

func TestTemplates_CollectionBookmarked(t *testing.T) {
	cfg := &config.Config{
		BaseURL:   "https://linkdeck.example.com",
		SiteTitle: "LinkDeck",
	}
	tpl := NewTemplates(cfg)

	collection := &models.Collection{
		ID:    uuid.New(),
		Title: "Reading List",
		Slug:  "reading-list",
	}
	bookmarker := &models.User{
		Name:  "Alice",
		Email: "alice@example.com",
	}

	subject, htmlBody, textBody := tpl.CollectionBookmarked(collection, bookmarker)

	if !strings.Contains(subject, "Alice") || !strings.Contains(subject, "Reading List") {
		t.Errorf("subject missing bookmarker or collection title: %q", subject)
	}
	if !strings.Contains(htmlBody, "https://linkdeck.example.com/c/reading-list") {
		t.Error("HTML body missing collection URL")
	}
	if !strings.Contains(textBody, "https://linkdeck.example.com/c/reading-list") {
		t.Error("text body missing collection URL")
	}
}

func TestTemplates_EscapesHTML(t *testing.T) {
	cfg := &config.Config{
		BaseURL:   "https://linkdeck.example.com",
		SiteTitle: "LinkDeck",
	}
	tpl := NewTemplates(cfg)

	collection := &models.Collection{
		Title: "<script>alert(1)</script>",
		Slug:  "xss",
	}
	bookmarker := &models.User{Name: "Bob"}

	_, htmlBody, _ := tpl.CollectionBookmarked(collection, bookmarker)

	if strings.Contains(htmlBody, "<script>") {
		t.Error("collection title was not escaped in HTML body")
	}
}
