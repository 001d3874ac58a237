package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const deviceKey = "device"

// AuthMiddleware requires a Bearer token on every path outside
// publicPrefixes. The token is not validated; its SHA-256 digest becomes
// the device key that scopes favorites and screens.
func AuthMiddleware(publicPrefixes ...string) fiber.Handler {
	return func(c fiber.Ctx) error {
		path := c.Path()

		for _, prefix := range publicPrefixes {
			if strings.HasPrefix(path, prefix) {
				return c.Next()
			}
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing Authorization header",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid Authorization header format, expected 'Bearer <token>'",
			})
		}

		token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "empty bearer token",
			})
		}

		c.Locals(deviceKey, DeviceKey(token))
		return c.Next()
	}
}

// DeviceKey derives the device key of a bearer token.
func DeviceKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Device returns the device key stored by AuthMiddleware, or "" on public
// routes.
func Device(c fiber.Ctx) string {
	if v, ok := c.Locals(deviceKey).(string); ok {
		return v
	}
	return ""
}
