package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/config"
	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// AuthService coordinates registration and login flows for all actor kinds.
type AuthService struct {
	admins       repository.AdminRepository
	subadmins    repository.SubadminRepository
	employees    repository.EmployeeRepository
	accessTokens *auth.TokenManager
	adminTokens  *auth.TokenManager
	bcryptCost   int
}

// AuthDependencies encapsulates repo requirements for the auth service.
type AuthDependencies struct {
	AdminRepo    repository.AdminRepository
	SubadminRepo repository.SubadminRepository
	EmployeeRepo repository.EmployeeRepository
}

// NewAuthService builds the service. Admin tokens get their own, longer TTL;
// both managers share the signing secret.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		admins:       deps.AdminRepo,
		subadmins:    deps.SubadminRepo,
		employees:    deps.EmployeeRepo,
		accessTokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		adminTokens:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AdminTokenTTLMinutes),
		bcryptCost:   cfg.Auth.BcryptCost,
	}
}

// RegisterEmployee creates a new employee account and issues a token. The
// password is hashed exactly once, here, before the row is written. An empty
// referral code gets generated from the employee's name.
func (s *AuthService) RegisterEmployee(ctx context.Context, fullName, email, password, referralCode string) (*domain.Employee, string, time.Time, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	employee := &domain.Employee{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		ReferralCode: referralCode,
		Status:       domain.EmployeeStatusPending,
	}
	if employee.ReferralCode == "" {
		employee.GenerateReferralCode()
	}
	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.accessTokens.GenerateToken(employee.ID, domain.ActorTypeEmployee, domain.RoleEmployee)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return employee, token, exp, nil
}

// LoginEmployee authenticates an employee and touches its last-login stamp.
func (s *AuthService) LoginEmployee(ctx context.Context, email, password string) (*domain.Employee, string, time.Time, error) {
	employee, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(employee.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	if err := s.employees.TouchLastLogin(ctx, employee.ID); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.accessTokens.GenerateToken(employee.ID, domain.ActorTypeEmployee, domain.RoleEmployee)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return employee, token, exp, nil
}

// CurrentEmployee returns the caller's own profile.
func (s *AuthService) CurrentEmployee(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return employee, nil
}

// LoginAdmin authenticates an admin and issues a long-lived token.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (*domain.Admin, string, time.Time, error) {
	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("admin")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(admin.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.adminTokens.GenerateToken(admin.ID, domain.ActorTypeAdmin, domain.RoleAdmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return admin, token, exp, nil
}

// CurrentAdmin returns the calling admin's profile.
func (s *AuthService) CurrentAdmin(ctx context.Context, id string) (*domain.Admin, error) {
	admin, err := s.admins.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("admin")
		}
		return nil, err
	}
	return admin, nil
}

// RegisterSubadmin creates a subadmin account.
func (s *AuthService) RegisterSubadmin(ctx context.Context, email, password string) (*domain.Subadmin, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	subadmin := &domain.Subadmin{Email: email, PasswordHash: hash}
	if err := s.subadmins.Create(ctx, subadmin); err != nil {
		return nil, err
	}
	return subadmin, nil
}

// LoginSubadmin authenticates a subadmin.
func (s *AuthService) LoginSubadmin(ctx context.Context, email, password string) (*domain.Subadmin, string, time.Time, error) {
	subadmin, err := s.subadmins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewNotFound("subadmin")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(subadmin.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.accessTokens.GenerateToken(subadmin.ID, domain.ActorTypeSubadmin, domain.RoleSubadmin)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return subadmin, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
// Access and admin tokens share a secret, so one parser verifies both.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.accessTokens
}
