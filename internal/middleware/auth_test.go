package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v3"

	"toolhub/internal/models"
)

func TestIsAPIRequest(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/tools", true},
		{"/api/requests/123", true},
		{"/api", false},
		{"/browse", false},
		{"/", false},
		{"/apiary", false},
	}

	app := fiber.New()
	app.Get("/*", func(c fiber.Ctx) error {
		if isAPIRequest(c) {
			return c.SendString("api")
		}
		return c.SendString("web")
	})

	for _, tt := range tests {
		resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
		if err != nil {
			t.Fatalf("app.Test(%q) error = %v", tt.path, err)
		}
		body := make([]byte, 3)
		resp.Body.Read(body)
		gotAPI := string(body) == "api"
		if gotAPI != tt.want {
			t.Errorf("isAPIRequest(%q) = %v, want %v", tt.path, gotAPI, tt.want)
		}
		resp.Body.Close()
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name       string
		user       any
		path       string
		wantStatus int
	}{
		{"admin allowed", &models.User{Role: models.RoleAdmin}, "/api/users", fiber.StatusOK},
		{"regular user forbidden on api", &models.User{Role: models.RoleUser}, "/api/users", fiber.StatusForbidden},
		{"no user on api", nil, "/api/users", fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			m := &AuthMiddleware{}

			app.Get(tt.path, func(c fiber.Ctx) error {
				if tt.user != nil {
					c.Locals("user", tt.user)
				}
				return c.Next()
			}, m.RequireAdmin, func(c fiber.Ctx) error {
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			if err != nil {
				t.Fatalf("app.Test() error = %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}
