package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/cashwave/internal/services"
)

// AdminMiddleware gates a route group on the authorization oracle. A
// failed admin check behaves exactly like a negative one: the request is
// turned away with 403, never an internal error.
func AdminMiddleware(authz *services.Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := GetCurrentPrincipal(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
		}

		if !authz.IsAdmin(c.Context(), principal) {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}

		return c.Next()
	}
}
