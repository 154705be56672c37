package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"toolhub/internal/config"
	"toolhub/internal/db"
	"toolhub/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db  *db.DB
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{db: database, cfg: cfg}
}

// isAPIRequest reports whether the request targets the JSON API, which must
// never answer with a login redirect.
func isAPIRequest(c fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), "/api/")
}

func denyUnauthenticated(c fiber.Ctx) error {
	if isAPIRequest(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"status": "error",
			"error":  "authentication required",
		})
	}
	return c.Redirect().To("/auth/login")
}

// RequireAuth ensures the user is authenticated. API requests get a 401;
// browser requests are redirected to the login flow.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return denyUnauthenticated(c)
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return denyUnauthenticated(c)
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err != nil {
		sess.Destroy()
		return denyUnauthenticated(c)
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAdmin ensures the user is authenticated and holds the admin role.
// Must run after RequireAuth in the chain.
func (m *AuthMiddleware) RequireAdmin(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return denyUnauthenticated(c)
	}

	if !user.IsAdmin() {
		if isAPIRequest(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status": "error",
				"error":  "admin role required",
			})
		}
		return fiber.NewError(fiber.StatusForbidden, "admin role required")
	}

	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require it.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return c.Next()
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub.(string))
	if err == nil {
		c.Locals("user", user)
	}

	return c.Next()
}
