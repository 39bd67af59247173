package auth

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller, minus its password hash.
type Principal struct {
	ActorType domain.ActorType
	ID        string
	Email     string
	Name      string
	Role      domain.Role
	LastLogin *time.Time
}

// PrincipalResolver looks a token subject up in one store. A nil principal
// with a nil error means "no match here, try the next resolver".
type PrincipalResolver func(ctx context.Context, subjectID string) (*Principal, error)

// Guard validates bearer tokens and loads principals through an explicit
// ordered resolver list; the first resolver that matches wins. Single-store
// and multi-store resolution are both just list contents.
type Guard struct {
	tokens    *TokenManager
	resolvers []PrincipalResolver
}

// NewGuard constructs authentication middleware over the given resolvers.
func NewGuard(tokens *TokenManager, resolvers ...PrincipalResolver) *Guard {
	return &Guard{tokens: tokens, resolvers: resolvers}
}

// Handle enforces authentication for protected routes. The token is read from
// the Authorization header, falling back to the "token" cookie; absence of
// both rejects the request before any store lookup happens.
func (g *Guard) Handle(c *fiber.Ctx) error {
	token := extractToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("no credentials provided")
	}

	claims, err := g.tokens.ParseToken(token)
	if err != nil {
		if err == ErrTokenExpired {
			return apperrors.NewUnauthorized("token expired")
		}
		return apperrors.NewUnauthorized("invalid token")
	}

	for _, resolve := range g.resolvers {
		principal, err := resolve(c.UserContext(), claims.SubjectID)
		if err != nil {
			return apperrors.MapError(err)
		}
		if principal != nil {
			c.Locals(principalKey, principal)
			return c.Next()
		}
	}

	return apperrors.NewUnauthorized("principal not found")
}

func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("token")
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
