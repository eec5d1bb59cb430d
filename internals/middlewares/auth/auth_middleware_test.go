package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	helper "hsetrack_backend/internals/helpers"
	"hsetrack_backend/internals/logger"
)

const secret = "s3cret"

func sign(t *testing.T, key string, claims jwt.MapClaims) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return tok
}

func newApp(secret string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: helper.JsonFiberError})
	admin := app.Group("/api/a", IsAdmin(secret, logger.Discard())...)
	admin.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("user_id").(string))
	})
	return app
}

func status(t *testing.T, app *fiber.App, token string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/a/ping", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestIsAdmin(t *testing.T) {
	app := newApp(secret)
	exp := time.Now().Add(time.Hour).Unix()

	assert.Equal(t, fiber.StatusOK, status(t, app, sign(t, secret, jwt.MapClaims{"sub": "u1", "role": "Admin", "exp": exp})))
	assert.Equal(t, fiber.StatusForbidden, status(t, app, sign(t, secret, jwt.MapClaims{"sub": "u2", "role": "viewer", "exp": exp})))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, sign(t, secret, jwt.MapClaims{"sub": "u3", "exp": exp})))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, sign(t, "other", jwt.MapClaims{"role": "admin", "exp": exp})))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, sign(t, secret, jwt.MapClaims{"role": "admin", "exp": time.Now().Add(-time.Hour).Unix()})))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, sign(t, secret, jwt.MapClaims{"role": "admin"})))
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, ""))
}

func TestEmptySecretRejectsEverything(t *testing.T) {
	app := newApp("")
	tok := sign(t, "anything", jwt.MapClaims{"role": "admin", "exp": time.Now().Add(time.Hour).Unix()})
	assert.Equal(t, fiber.StatusUnauthorized, status(t, app, tok))
}
