package middleware

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Annisa878/perikanan-tangkap-sub001/apperror"
	"github.com/Annisa878/perikanan-tangkap-sub001/models"
	"github.com/Annisa878/perikanan-tangkap-sub001/roles"
	"github.com/Annisa878/perikanan-tangkap-sub001/services"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver map[string]roles.Role

func (s stubResolver) Resolve(_ context.Context, token string) (*services.Principal, error) {
	role, ok := s[token]
	if !ok {
		return nil, apperror.Wrap(apperror.ErrUnauthorized, "token tidak valid")
	}
	return &services.Principal{UserID: 7, SessionID: "s-" + token, Role: role, User: &models.User{Role: string(role)}}, nil
}

func newApp() *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler})
	auth := Auth(stubResolver{"tok-user": roles.User, "tok-admin": roles.Admin})
	app.Get("/me", auth, func(ctx *fiber.Ctx) error {
		p, err := CurrentPrincipal(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(string(p.Role))
	})
	app.Get("/users", auth, RequireCapability(roles.ManageUsers), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})
	return app
}

func get(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuth(t *testing.T) {
	app := newApp()

	code, body := get(t, app, "/me", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Contains(t, body, `"redirect":"/sign-in"`)

	code, _ = get(t, app, "/me", "Token tok-user")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, _ = get(t, app, "/me", "Bearer salah")
	assert.Equal(t, fiber.StatusUnauthorized, code)

	code, body = get(t, app, "/me", "Bearer tok-user")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "user", body)
}

func TestRequireCapability(t *testing.T) {
	app := newApp()

	code, body := get(t, app, "/users", "Bearer tok-user")
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.Contains(t, body, `"redirect":"/user/dashboard"`)

	code, body = get(t, app, "/users", "bearer tok-admin")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "ok", body)
}

func TestAttemptLimiter(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apperror.Handler})
	app.Post("/login", AttemptLimiter(2, time.Minute), func(ctx *fiber.Ctx) error {
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest("POST", "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}
