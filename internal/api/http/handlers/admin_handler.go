package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/dto"
	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/service"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// AdminHandler exposes admin auth endpoints. There is no admin registration
// route; accounts are seeded out-of-band.
type AdminHandler struct {
	auth *service.AuthService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(authService *service.AuthService) *AdminHandler {
	return &AdminHandler{auth: authService}
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	admin, token, exp, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    dto.AdminView(admin),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Current handles GET /api/admin/current.
func (h *AdminHandler) Current(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	admin, err := h.auth.CurrentAdmin(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}
	return respondOK(c, dto.AdminView(admin))
}
