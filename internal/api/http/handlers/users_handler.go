package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/dto"
	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	"github.com/spec-kit/referral-service/internal/service"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// UsersHandler exposes end-user CRUD.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /api/v1/users. The referral, when present, is checked
// against the employee store before the user is persisted.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		City:        req.City,
		Password:    req.Password,
		Referral:    req.Referral,
	})
	if err != nil {
		return err
	}
	return respondCreated(c, dto.UserView(user, nil, nil))
}

// List handles GET /api/v1/users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	filter := repository.UserFilter{
		Sort:        c.Query("sort"),
		PageRequest: parsePageRequest(c),
	}
	if city := c.Query("city"); city != "" {
		filter.City = &city
	}
	if referral := c.Query("referral"); referral != "" {
		filter.Referral = &referral
	}

	result, err := h.users.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	fields := parseSelectFields(c)
	views := make([]map[string]any, 0, len(result.Users))
	for i := range result.Users {
		var referrer *domain.Employee
		if ref := result.Users[i].Referral; ref != nil {
			referrer = result.Referrers[*ref]
		}
		views = append(views, dto.UserView(&result.Users[i], referrer, fields))
	}
	return respondPage(c, views, len(views), result.Total, result.Pagination)
}

// Get handles GET /api/v1/users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, referrer, err := h.users.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, dto.UserView(user, referrer, nil))
}

// Update handles PUT /api/v1/users/:id. Password and referral are excluded
// from the accepted payload.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	user, err := h.users.Update(c.UserContext(), c.Params("id"), repository.UserUpdate{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Age:         req.Age,
		City:        req.City,
	})
	if err != nil {
		return err
	}
	return respondOK(c, dto.UserView(user, nil, nil))
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respondOK(c, fiber.Map{})
}
