package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/authz"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/usercontext"
)

// RequireAPIAuth ensures a logged-in session for API routes and returns a
// JSON 401 otherwise.
func RequireAPIAuth(c *fiber.Ctx) error {
	if !usercontext.IsLoggedIn(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "Non authentifié",
		})
	}
	return c.Next()
}

// RequirePermission returns a handler enforcing one permission for the
// current user's role. It implies authentication.
func RequirePermission(perm authz.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uc := usercontext.GetUserContext(c)
		if !uc.IsLoggedIn {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "Non authentifié",
			})
		}
		if !authz.Can(uc.Role, perm) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":   "forbidden",
				"message": "Accès refusé",
			})
		}
		return c.Next()
	}
}
