package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"
)

func newTestApp(t *testing.T) (*fiber.App, *AuthMiddleware) {
	t.Helper()

	store := session.NewStore()
	auth := NewAuthMiddleware(store, nil)
	return fiber.New(), auth
}

func TestRequireAuth_RedirectsWhenAnonymous(t *testing.T) {
	app, auth := newTestApp(t)
	app.Get("/me", auth.RequireAuth, func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusFound && resp.StatusCode != fiber.StatusSeeOther {
		t.Errorf("status = %d, want redirect", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/login" {
		t.Errorf("Location = %q, want /login", loc)
	}
}

func TestRequireAuthAPI_Returns401WhenAnonymous(t *testing.T) {
	app, auth := newTestApp(t)
	app.Get("/api/private", auth.RequireAuthAPI, func(c fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/private", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestOptionalAuth_PassesThroughWhenAnonymous(t *testing.T) {
	app, auth := newTestApp(t)
	app.Get("/", auth.OptionalAuth, func(c fiber.Ctx) error {
		if CurrentUser(c) != nil {
			return c.SendString("user")
		}
		return c.SendString("anonymous")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
