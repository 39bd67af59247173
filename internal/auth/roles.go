package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// RequireRoles ensures the attached principal carries one of the allowed
// roles. A missing principal is rejected as unauthenticated, which takes
// precedence over not-authorized. With no roles given, any authenticated
// principal passes.
func RequireRoles(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}
