package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/cashwave/internal/config"
	"github.com/example/cashwave/internal/services"
	"github.com/example/cashwave/internal/utils"
)

const principalContextKey = "currentPrincipal"

// AuthMiddleware validates JWT tokens and loads the authenticated
// principal into the request context. There is no ambient current-user
// state anywhere; every operation receives the principal from here.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, email, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(principalContextKey, services.Principal{UID: userID, Email: email})
		return c.Next()
	}
}

// GetCurrentPrincipal extracts the authenticated principal from context.
func GetCurrentPrincipal(c *fiber.Ctx) (services.Principal, bool) {
	value := c.Locals(principalContextKey)
	if value == nil {
		return services.Principal{}, false
	}

	if p, ok := value.(services.Principal); ok {
		return p, true
	}

	return services.Principal{}, false
}
