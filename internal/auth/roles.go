package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/pkg/util"
)

// RequireAuthenticated ensures a caller is logged in.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return util.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin ensures the caller holds the admin role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return util.NewUnauthorized("authentication required")
		}
		if !principal.User.IsAdmin() {
			return util.NewPermissionDenied("admin role required")
		}
		return c.Next()
	}
}
