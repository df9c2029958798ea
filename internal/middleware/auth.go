package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkdeck/internal/db"
	"linkdeck/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	store *session.Store
	db    *db.DB
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(store *session.Store, db *db.DB) *AuthMiddleware {
	return &AuthMiddleware{store: store, db: db}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	user := m.loadUser(c)
	if user == nil {
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireAuthAPI ensures the user is authenticated, returning a JSON 401 if
// not. Used on /api routes where a redirect would confuse clients.
func (m *AuthMiddleware) RequireAuthAPI(c fiber.Ctx) error {
	user := m.loadUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   "Authentication required",
		})
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	if user := m.loadUser(c); user != nil {
		c.Locals("user", user)
	}
	return c.Next()
}

// loadUser resolves the session's user_sub to a user record. A stale sub
// (user deleted) destroys the session.
func (m *AuthMiddleware) loadUser(c fiber.Ctx) *models.User {
	sess, err := m.store.Get(c)
	if err != nil {
		return nil
	}

	userSub := sess.Get("user_sub")
	if userSub == nil {
		return nil
	}

	sub, ok := userSub.(string)
	if !ok {
		return nil
	}

	user, err := m.db.GetUserBySub(c.Context(), sub)
	if err != nil {
		sess.Destroy()
		return nil
	}

	return user
}

// CurrentUser returns the authenticated user from the request context, or nil.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
