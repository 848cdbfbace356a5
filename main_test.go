package main

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"vagsociety_backend/internals/configs"
	middlewares "vagsociety_backend/internals/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(proxies ...string) *configs.Config {
	return &configs.Config{UploadMaxTotalBytes: 40 << 20, TrustedProxies: proxies}
}

func clientIP(t *testing.T, app *fiber.App, forwarded string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.Header.Set("X-Forwarded-For", forwarded)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(raw)
}

func TestForwardedForIgnoredWithoutTrustedProxies(t *testing.T) {
	app := newApp(testConfig())
	app.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })
	assert.NotEqual(t, "203.0.113.7", clientIP(t, app, "203.0.113.7"))

	trusted := newApp(testConfig("0.0.0.0/0"))
	trusted.Get("/ip", func(c *fiber.Ctx) error { return c.SendString(c.IP()) })
	assert.Equal(t, "203.0.113.7", clientIP(t, trusted, "203.0.113.7"))
}

func TestLoginLimiterNotBypassedBySpoofedHeader(t *testing.T) {
	app := newApp(testConfig())
	app.Post("/login", middlewares.LoginRateLimiter(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	last := 0
	for i := 0; i < 6; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("198.51.100.%d", i+1))
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		last = resp.StatusCode
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}
