package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"onepercent-backend/internal/web"
)

// AuthMiddleware returns a Fiber middleware that validates JWT bearer tokens
// and sets the operator's user id on the request.
func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return web.UnauthorizedError("Missing auth token")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return web.UnauthorizedError("Invalid auth header format")
		}

		userID, err := ParseAccessToken(parts[1], secret)
		if err != nil {
			return web.UnauthorizedError("Invalid or expired token")
		}

		c.Locals("userID", userID)
		return c.Next()
	}
}

// UserID extracts the authenticated operator's id from a Fiber context.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("userID").(string)
	return id
}
