package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/domain"
	apperrors "github.com/spec-kit/scaffold-report-service/pkg/util"
)

// RequireRole restricts a route to identities whose role exactly
// matches the required one. It must run after the guard; an absent
// identity is treated as forbidden rather than crashing. Any role
// outside the match, known or not, is rejected.
func RequireRole(required domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := IdentityFromContext(c)
		if !ok {
			return apperrors.NewForbidden("access denied")
		}
		if identity.Role != required {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin gates administrative operations.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
