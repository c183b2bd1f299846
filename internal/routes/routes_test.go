package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HamnaHameedKhan/Gym-Trainer-Website/internal/config"
	"github.com/gofiber/fiber/v2"
)

func newGuardedApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	cfg := &config.Config{JWTSecret: "routes-secret", SignInPath: "/login", AppEnv: "production"}
	if err := RegisterRoutes(app, cfg, Dependencies{}); err != nil {
		t.Fatalf("RegisterRoutes: %v", err)
	}
	return app
}

func TestProtectedRoutesRejectMissingToken(t *testing.T) {
	app := newGuardedApp(t)

	for _, target := range []string{
		"/api/v1/requests",
		"/api/v1/my-trainees",
		"/api/v1/trainer-profile",
		"/api/auth/me",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil))
		if err != nil {
			t.Fatalf("app.Test %s: %v", target, err)
		}

		var body struct {
			Success  bool   `json:"success"`
			Redirect string `json:"redirect"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("Decode %s: %v", target, err)
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", target, resp.StatusCode)
		}
		if body.Success || body.Redirect != "/login" {
			t.Fatalf("%s: unexpected body %+v", target, body)
		}
	}
}

func TestProtectedRoutesRedirectBrowsers(t *testing.T) {
	app := newGuardedApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/requests", nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != "/login" {
		t.Fatalf("expected redirect to /login, got %q", got)
	}
}

func TestDocsNotMountedOutsideDevelopment(t *testing.T) {
	app := newGuardedApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/docs/openapi.yaml", nil))
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}
