package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/dto"
	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/service"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// AuthHandler exposes the employee auth endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.EmployeeRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	employee, token, exp, err := h.auth.RegisterEmployee(c.UserContext(), req.FullName, req.Email, req.Password, req.ReferralCode)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data": fiber.Map{
			"id":           employee.ID,
			"fullName":     employee.FullName,
			"email":        employee.Email,
			"referralCode": employee.ReferralCode,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	employee, token, exp, err := h.auth.LoginEmployee(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data": fiber.Map{
			"id":       employee.ID,
			"fullName": employee.FullName,
			"email":    employee.Email,
			"status":   employee.Status,
		},
		"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	employee, err := h.auth.CurrentEmployee(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return respondOK(c, dto.EmployeeView(employee, nil))
}
