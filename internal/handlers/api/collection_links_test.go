package api

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Body validation rejects bad input before any collection lookup runs, so
// these tests exercise Add without a database behind the handler.
func newCollectionLinkApp() *fiber.App {
	app := fiber.New()
	handler := NewCollectionLinkHandler(nil)
	app.Post("/api/collections/id/:id/links", handler.Add)
	return app
}

func addLinkPath() string {
	return "/api/collections/id/" + uuid.NewString() + "/links"
}

func TestCollectionLinkAdd_RejectsMalformedFavicon(t *testing.T) {
	app := newCollectionLinkApp()

	for _, favicon := range []string{
		"javascript:alert(1)",
		"ht!tp://example.com/icon.png",
		"data:image/png;base64,AAAA",
		"//example.com/icon.png",
	} {
		body := fmt.Sprintf(`{"url":"https://example.com","title":"Example","status":"later","favicon":%q}`, favicon)
		status, payload := postJSON(t, app, addLinkPath(), body)

		if status != fiber.StatusBadRequest {
			t.Errorf("favicon %q: status = %d, want 400", favicon, status)
		}
		if payload["status"] != "error" {
			t.Errorf("favicon %q: envelope status = %v, want error", favicon, payload["status"])
		}
	}
}

func TestCollectionLinkAdd_RejectsInvalidURL(t *testing.T) {
	app := newCollectionLinkApp()

	status, _ := postJSON(t, app, addLinkPath(), `{"url":"not a url","title":"Example","status":"later"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}

func TestCollectionLinkAdd_RejectsUnknownStatus(t *testing.T) {
	app := newCollectionLinkApp()

	status, _ := postJSON(t, app, addLinkPath(), `{"url":"https://example.com","title":"Example","status":"someday"}`)
	if status != fiber.StatusBadRequest {
		t.Errorf("status = %d, want 400", status)
	}
}
