package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

func newGuardApp(guard *Guard, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "message": de.Message})
		},
	})

	chain := append([]fiber.Handler{guard.Handle}, extra...)
	chain = append(chain, func(c *fiber.Ctx) error {
		principal, _ := PrincipalFromContext(c)
		return c.JSON(fiber.Map{"id": principal.ID, "role": principal.Role})
	})
	app.Get("/protected", chain...)
	return app
}

func staticResolver(principal *Principal, calls *int) PrincipalResolver {
	return func(ctx context.Context, subjectID string) (*Principal, error) {
		if calls != nil {
			*calls++
		}
		if principal != nil && principal.ID == subjectID {
			return principal, nil
		}
		return nil, nil
	}
}

func TestGuard_NoCredentials_RejectsBeforeResolution(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	calls := 0
	guard := NewGuard(tm, staticResolver(&Principal{ID: "id-1"}, &calls))
	app := newGuardApp(guard)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, calls, "no store lookup may happen without credentials")
}

func TestGuard_BearerToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("id-1", domain.ActorTypeEmployee, domain.RoleEmployee)
	require.NoError(t, err)

	principal := &Principal{ID: "id-1", ActorType: domain.ActorTypeEmployee, Role: domain.RoleEmployee}
	app := newGuardApp(NewGuard(tm, staticResolver(principal, nil)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuard_CookieFallback(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("id-1", domain.ActorTypeUser, domain.RoleUser)
	require.NoError(t, err)

	principal := &Principal{ID: "id-1", ActorType: domain.ActorTypeUser, Role: domain.RoleUser}
	app := newGuardApp(NewGuard(tm, staticResolver(principal, nil)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGuard_MultiStoreResolutionOrder(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("id-2", domain.ActorTypeEmployee, domain.RoleEmployee)
	require.NoError(t, err)

	primaryCalls, secondaryCalls := 0, 0
	primary := staticResolver(nil, &primaryCalls)
	secondary := staticResolver(&Principal{ID: "id-2", Role: domain.RoleEmployee}, &secondaryCalls)
	app := newGuardApp(NewGuard(tm, primary, secondary))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, primaryCalls)
	assert.Equal(t, 1, secondaryCalls)
}

func TestGuard_PrincipalNotFound(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("ghost", domain.ActorTypeUser, domain.RoleUser)
	require.NoError(t, err)

	app := newGuardApp(NewGuard(tm, staticResolver(nil, nil)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestGuard_InvalidToken(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	calls := 0
	app := newGuardApp(NewGuard(tm, staticResolver(nil, &calls)))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, calls)
}

func TestRequireRoles_ForbiddenOnRoleMismatch(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.GenerateToken("id-1", domain.ActorTypeUser, domain.RoleUser)
	require.NoError(t, err)

	principal := &Principal{ID: "id-1", ActorType: domain.ActorTypeUser, Role: domain.RoleUser}
	app := newGuardApp(NewGuard(tm, staticResolver(principal, nil)), RequireRoles(domain.RoleAdmin))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRoles_UnauthenticatedTakesPrecedence(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	app.Get("/admin-only", RequireRoles(domain.RoleAdmin), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin-only", nil))
	require.NoError(t, err)

	// Not 403: an absent identity is a 401 even on a role-guarded route.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
