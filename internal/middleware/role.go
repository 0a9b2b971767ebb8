package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// RequireRoles gates a route on the normalized role local written by
// AttachJWTLocals, so it must sit after it in the chain. A request that
// never went through the JWT middleware has no role and is rejected.
func RequireRoles(allowed ...string) fiber.Handler {
	allowedSet := make(map[string]bool, len(allowed))
	for _, r := range allowed {
		allowedSet[strings.ToLower(r)] = true
	}

	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return fiber.ErrUnauthorized
		}
		if !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}
		return c.Next()
	}
}
