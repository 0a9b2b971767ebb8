package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/okovalen/freelance-platform-api/internal/utils"
)

func AttachJWTLocals() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		uid, err := strconv.ParseUint(strings.TrimSpace(claims.UserID), 10, 64)
		if err != nil || uid == 0 {
			return fiber.ErrUnauthorized
		}

		c.Locals("userId", uint(uid))
		c.Locals("role", strings.ToLower(strings.TrimSpace(claims.Role)))

		return c.Next()
	}
}
