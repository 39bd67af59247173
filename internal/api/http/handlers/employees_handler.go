package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/referral-service/internal/api/dto"
	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	"github.com/spec-kit/referral-service/internal/service"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// EmployeesHandler exposes employee CRUD and referral lookups.
type EmployeesHandler struct {
	employees *service.EmployeeService
}

// NewEmployeesHandler constructs handler.
func NewEmployeesHandler(employeeService *service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{employees: employeeService}
}

// Create handles POST /api/employee.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	principal, _ := auth.PrincipalFromContext(c)

	var req dto.EmployeeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	employee, err := h.employees.Create(c.UserContext(), principal,
		req.FullName, req.Email, req.Password, req.ReferralCode, domain.EmployeeStatus(req.Status))
	if err != nil {
		return err
	}
	return respondCreated(c, dto.EmployeeView(employee, nil))
}

// List handles GET /api/employee with filter, sort, select and pagination.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	filter := repository.EmployeeFilter{
		Sort:        c.Query("sort"),
		PageRequest: parsePageRequest(c),
	}
	if status := c.Query("status"); status != "" {
		s := domain.EmployeeStatus(status)
		filter.Status = &s
	}
	if referredBy := c.Query("referredBy"); referredBy != "" {
		filter.ReferredBy = &referredBy
	}

	result, err := h.employees.List(c.UserContext(), filter)
	if err != nil {
		return err
	}

	fields := parseSelectFields(c)
	views := make([]map[string]any, 0, len(result.Employees))
	for i := range result.Employees {
		views = append(views, dto.EmployeeView(&result.Employees[i], fields))
	}
	return respondPage(c, views, len(views), result.Total, result.Pagination)
}

// Get handles GET /api/employee/:id.
func (h *EmployeesHandler) Get(c *fiber.Ctx) error {
	employee, err := h.employees.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respondOK(c, dto.EmployeeView(employee, nil))
}

// Update handles PUT /api/employee/:id. Only name and status are mutable;
// password and referral fields are never written through updates.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	var req dto.EmployeeUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	update := repository.EmployeeUpdate{FullName: req.FullName}
	if req.Status != nil {
		status := domain.EmployeeStatus(*req.Status)
		update.Status = &status
	}

	employee, err := h.employees.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return err
	}
	return respondOK(c, dto.EmployeeView(employee, nil))
}

// Delete handles DELETE /api/employee/:id.
func (h *EmployeesHandler) Delete(c *fiber.Ctx) error {
	employee, err := h.employees.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"id": employee.ID},
		"message": "Employee deleted successfully",
	})
}

// ListByReferralCode handles GET /api/employee/referred/:referralCode.
func (h *EmployeesHandler) ListByReferralCode(c *fiber.Ctx) error {
	employees, err := h.employees.ListByReferralCode(c.UserContext(), c.Params("referralCode"))
	if err != nil {
		return err
	}

	views := make([]map[string]any, 0, len(employees))
	for i := range employees {
		views = append(views, dto.EmployeeView(&employees[i], nil))
	}
	return respondList(c, views, len(views))
}

// ListMyReferred handles GET /api/employee/me/referred, listing employees
// the calling user referred.
func (h *EmployeesHandler) ListMyReferred(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	employees, err := h.employees.ListReferredBy(c.UserContext(), principal.ID)
	if err != nil {
		return err
	}

	fields := []string{"fullName", "email", "status", "createdAt", "lastLogin"}
	views := make([]map[string]any, 0, len(employees))
	for i := range employees {
		views = append(views, dto.EmployeeView(&employees[i], fields))
	}
	return respondList(c, views, len(views))
}
