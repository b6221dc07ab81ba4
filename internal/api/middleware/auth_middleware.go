package middleware

import (
	"crypto/subtle"

	config "github.com/campfireagency/socialpress/configs"
	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	cfg config.Config
}

func NewAuthMiddleware(cfg config.Config) *AuthMiddleware {
	return &AuthMiddleware{cfg: cfg}
}

// AuthMiddleware gates the trigger API behind the internal API key. Admin
// session handling lives upstream of this service; callers here are the
// scheduler and the admin backend, both of which hold the shared key.
func (m *AuthMiddleware) AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		apiKey := c.Get("X-API-Key")
		if apiKey == "" {
			apiKey = c.Query("api_key")
		}

		if m.cfg.InternalAPIKey == "" ||
			subtle.ConstantTimeCompare([]byte(apiKey), []byte(m.cfg.InternalAPIKey)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing or invalid API key",
			})
		}

		return c.Next()
	}
}
