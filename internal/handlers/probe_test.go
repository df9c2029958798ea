package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"
)

func TestLiveness(t *testing.T) {
	app := fiber.New()
	handler := NewProbeHandler(nil)
	app.Get("/healthz", handler.Liveness)

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("status field = %v, want ok", payload["status"])
	}
	if payload["service"] != "linkdeck" {
		t.Errorf("service field = %v, want linkdeck", payload["service"])
	}
}
