package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/OussamaBoujdig/archivio1/internal/pkg/session"
	"github.com/OussamaBoujdig/archivio1/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the session cookie into a user context for
// every request. Anonymous requests get an empty context; handlers never
// touch the cookie or the session store themselves.
func UserContextMiddleware(c *fiber.Ctx) error {
	token := c.Cookies(session.CookieName)
	user, ok := session.GetService().ResolveUser(token)
	if !ok {
		usercontext.SetUserContext(c, usercontext.UserContext{IsLoggedIn: false})
		return c.Next()
	}

	usercontext.SetUserContext(c, usercontext.FromUser(user))
	return c.Next()
}
