package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/config"
	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

func testAuthConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			AdminTokenTTLMinutes:  1440,
			BcryptCost:            testBcryptCost,
		},
	}
}

func newAuthService(admins *fakeAdminRepo, subadmins *fakeSubadminRepo, employees *fakeEmployeeRepo) *AuthService {
	return NewAuthService(testAuthConfig(), AuthDependencies{
		AdminRepo:    admins,
		SubadminRepo: subadmins,
		EmployeeRepo: employees,
	})
}

func TestAuthService_RegisterEmployee(t *testing.T) {
	var stored *domain.Employee
	employees := &fakeEmployeeRepo{
		CreateFn: func(ctx context.Context, employee *domain.Employee) error {
			employee.ID = "emp-1"
			stored = employee
			return nil
		},
	}
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, employees)

	employee, token, exp, err := svc.RegisterEmployee(context.Background(), "Jane Roe", "jane@example.com", "password1", "")
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Equal(t, domain.EmployeeStatusPending, stored.Status)
	assert.NotEmpty(t, stored.ReferralCode, "missing code must be generated")
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "password1"),
		"the stored hash must verify against the raw password exactly once")

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, employee.ID, claims.SubjectID)
	assert.Equal(t, domain.RoleEmployee, claims.Role)
	assert.False(t, exp.IsZero())
}

func TestAuthService_RegisterEmployee_KeepsSuppliedCode(t *testing.T) {
	var stored *domain.Employee
	employees := &fakeEmployeeRepo{
		CreateFn: func(ctx context.Context, employee *domain.Employee) error {
			stored = employee
			return nil
		},
	}
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, employees)

	_, _, _, err := svc.RegisterEmployee(context.Background(), "Jane Roe", "jane@example.com", "password1", "JAN1A2B3C")
	require.NoError(t, err)
	assert.Equal(t, "JAN1A2B3C", stored.ReferralCode)
}

func TestAuthService_LoginEmployee(t *testing.T) {
	hash, err := auth.HashPassword("password1", testBcryptCost)
	require.NoError(t, err)

	touched := 0
	employees := &fakeEmployeeRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
			return &domain.Employee{ID: "emp-1", Email: email, PasswordHash: hash}, nil
		},
		TouchLastLoginFn: func(ctx context.Context, id string) error {
			touched++
			return nil
		},
	}
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, employees)

	employee, token, _, err := svc.LoginEmployee(context.Background(), "jane@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", employee.ID)
	assert.Equal(t, 1, touched)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.ActorTypeEmployee, claims.Actor)
}

func TestAuthService_LoginEmployee_WrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("password1", testBcryptCost)
	require.NoError(t, err)

	employees := &fakeEmployeeRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.Employee, error) {
			return &domain.Employee{ID: "emp-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, employees)

	_, _, _, err = svc.LoginEmployee(context.Background(), "jane@example.com", "wrong")
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", de.Code)
	assert.Equal(t, "invalid credentials", de.Message)
}

func TestAuthService_LoginEmployee_UnknownEmail(t *testing.T) {
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, &fakeEmployeeRepo{})

	_, _, _, err := svc.LoginEmployee(context.Background(), "nobody@example.com", "password1")
	require.Error(t, err)

	// An unknown email reads exactly like a bad password.
	de := apperrors.ToDomainError(err)
	assert.Equal(t, "UNAUTHORIZED", de.Code)
	assert.Equal(t, "invalid credentials", de.Message)
}

func TestAuthService_LoginAdmin(t *testing.T) {
	hash, err := auth.HashPassword("root-pass", testBcryptCost)
	require.NoError(t, err)

	admins := &fakeAdminRepo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.Admin, error) {
			return &domain.Admin{ID: "admin-1", Email: email, PasswordHash: hash}, nil
		},
	}
	svc := newAuthService(admins, &fakeSubadminRepo{}, &fakeEmployeeRepo{})

	admin, token, _, err := svc.LoginAdmin(context.Background(), "admin@example.com", "root-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin-1", admin.ID)

	// Admin tokens are signed with the shared secret, so the access-token
	// parser verifies them too.
	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestAuthService_LoginAdmin_UnknownEmail(t *testing.T) {
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, &fakeEmployeeRepo{})

	_, _, _, err := svc.LoginAdmin(context.Background(), "nobody@example.com", "root-pass")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestAuthService_RegisterSubadmin(t *testing.T) {
	var stored *domain.Subadmin
	subadmins := &fakeSubadminRepo{
		CreateFn: func(ctx context.Context, subadmin *domain.Subadmin) error {
			subadmin.ID = "sub-1"
			stored = subadmin
			return nil
		},
	}
	svc := newAuthService(&fakeAdminRepo{}, subadmins, &fakeEmployeeRepo{})

	subadmin, err := svc.RegisterSubadmin(context.Background(), "sub@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", subadmin.ID)
	assert.NoError(t, auth.ComparePassword(stored.PasswordHash, "password1"))
}

func TestAuthService_LoginSubadmin_UnknownEmail(t *testing.T) {
	svc := newAuthService(&fakeAdminRepo{}, &fakeSubadminRepo{}, &fakeEmployeeRepo{})

	_, _, _, err := svc.LoginSubadmin(context.Background(), "nobody@example.com", "password1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
