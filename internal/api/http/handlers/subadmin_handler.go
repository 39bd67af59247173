package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/dto"
	"github.com/spec-kit/referral-service/internal/service"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// SubadminHandler exposes subadmin lifecycle endpoints.
type SubadminHandler struct {
	auth      *service.AuthService
	subadmins *service.SubadminService
}

// NewSubadminHandler constructs handler.
func NewSubadminHandler(authService *service.AuthService, subadminService *service.SubadminService) *SubadminHandler {
	return &SubadminHandler{auth: authService, subadmins: subadminService}
}

// Register handles POST /api/v1/subadmin/register.
func (h *SubadminHandler) Register(c *fiber.Ctx) error {
	var req dto.SubadminRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	subadmin, err := h.auth.RegisterSubadmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return respondCreated(c, dto.SubadminView(subadmin))
}

// Login handles POST /api/v1/subadmin/login.
func (h *SubadminHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	subadmin, token, exp, err := h.auth.LoginSubadmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"data":    dto.SubadminView(subadmin),
		"auth":    dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// List handles GET /api/v1/subadmin. Admin-only; the source left this route
// open, which was a known gap.
func (h *SubadminHandler) List(c *fiber.Ctx) error {
	subadmins, err := h.subadmins.List(c.UserContext())
	if err != nil {
		return err
	}

	views := make([]map[string]any, 0, len(subadmins))
	for i := range subadmins {
		views = append(views, dto.SubadminView(&subadmins[i]))
	}
	return respondList(c, views, len(views))
}
