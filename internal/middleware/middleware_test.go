package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/okovalen/freelance-platform-api/internal/middleware"
	"github.com/okovalen/freelance-platform-api/internal/utils"
)

const testSecret = "test-secret"

func newAuthApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(middleware.JWTFromCookie(testSecret), middleware.AttachJWTLocals())
	app.Get("/admin", middleware.RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true, "userId": c.Locals("userId")})
	})
	return app
}

func requestWithToken(t *testing.T, app *fiber.App, userID, role string) int {
	t.Helper()
	token, err := utils.SignJWT(testSecret, userID, role, 60)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "fp_token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestRequireRoles_AdminPasses(t *testing.T) {
	app := newAuthApp(t)
	require.Equal(t, fiber.StatusOK, requestWithToken(t, app, "1", "admin"))
}

func TestRequireRoles_WrongRoleIsForbidden(t *testing.T) {
	app := newAuthApp(t)
	require.Equal(t, fiber.StatusForbidden, requestWithToken(t, app, "2", "freelancer"))
}

func TestRequireRoles_NoCookieIsUnauthorized(t *testing.T) {
	app := newAuthApp(t)
	req := httptest.NewRequest("GET", "/admin", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireRoles_WithoutJWTLocalsIsUnauthorized(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", middleware.RequireRoles("admin"), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAttachJWTLocals_NonNumericSubjectIsUnauthorized(t *testing.T) {
	app := newAuthApp(t)
	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, "not-a-number", "admin"))
}
