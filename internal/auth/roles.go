package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/gearguard/maintenance-service/pkg/util"
)

// RequireCapability allows the request through when the principal holds any
// of the listed capabilities.
func RequireCapability(capabilities ...Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		for _, capability := range capabilities {
			if principal.Can(capability) {
				return c.Next()
			}
		}
		return apperrors.NewForbidden("insufficient permissions")
	}
}

// RequireAuthenticated ensures a principal is present.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}
