package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CORSConfig controls the headers attached by the CORS middleware.
type CORSConfig struct {
	// AllowMethods is sent as Access-Control-Allow-Methods.
	AllowMethods string
	// ExposeHeaders, when non-empty, is sent as Access-Control-Expose-Headers.
	// The video read path needs Content-Length, Content-Range and
	// Accept-Ranges visible to browser media players.
	ExposeHeaders string
}

// CORS attaches permissive cross-origin headers to every response and answers
// OPTIONS preflight requests with 200 and no body. The media surface is
// consumed by a separate storefront origin, so the policy is deliberately
// wide open; access control lives with the admin endpoints, not here.
func CORS(cfg CORSConfig) fiber.Handler {
	if cfg.AllowMethods == "" {
		cfg.AllowMethods = "GET, HEAD, OPTIONS"
	}

	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", "*")
		c.Set("Access-Control-Allow-Methods", cfg.AllowMethods)
		c.Set("Access-Control-Allow-Headers", "Content-Type, Range")
		if cfg.ExposeHeaders != "" {
			c.Set("Access-Control-Expose-Headers", cfg.ExposeHeaders)
		}

		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	}
}
