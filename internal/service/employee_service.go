package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// EmployeeService orchestrates employee CRUD and referral lookups.
type EmployeeService struct {
	employees  repository.EmployeeRepository
	bcryptCost int
}

// NewEmployeeService builds the service.
func NewEmployeeService(employees repository.EmployeeRepository, bcryptCost int) *EmployeeService {
	return &EmployeeService{employees: employees, bcryptCost: bcryptCost}
}

// EmployeeListResult bundles a page of employees with pagination data.
type EmployeeListResult struct {
	Employees  []domain.Employee
	Total      int
	Pagination repository.Pagination
}

// Create adds a new employee. When the caller is an end-user, the new
// employee is attributed to them through referredBy.
func (s *EmployeeService) Create(ctx context.Context, caller *auth.Principal, fullName, email, password, referralCode string, status domain.EmployeeStatus) (*domain.Employee, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	if status == "" {
		status = domain.EmployeeStatusPending
	}
	employee := &domain.Employee{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
		ReferralCode: referralCode,
		Status:       status,
	}
	if employee.ReferralCode == "" {
		employee.GenerateReferralCode()
	}
	if caller != nil && caller.ActorType == domain.ActorTypeUser {
		referrer := caller.ID
		employee.ReferredBy = &referrer
	}

	if err := s.employees.Create(ctx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// List returns a filtered, sorted page of employees plus the filtered total.
func (s *EmployeeService) List(ctx context.Context, filter repository.EmployeeFilter) (*EmployeeListResult, error) {
	employees, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &EmployeeListResult{
		Employees:  employees,
		Total:      total,
		Pagination: repository.BuildPagination(filter.PageRequest, total),
	}, nil
}

// Get returns a single employee by id.
func (s *EmployeeService) Get(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return employee, nil
}

// ListByReferralCode returns employees carrying the given code; no matches is
// a not-found condition rather than an empty page.
func (s *EmployeeService) ListByReferralCode(ctx context.Context, code string) ([]domain.Employee, error) {
	employees, err := s.employees.ListByReferralCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, apperrors.NewNotFound("employees with referral code " + code)
	}
	return employees, nil
}

// ListReferredBy returns employees the given user referred.
func (s *EmployeeService) ListReferredBy(ctx context.Context, userID string) ([]domain.Employee, error) {
	return s.employees.ListByReferredBy(ctx, userID)
}

// Update applies a partial update; password and referral fields are not
// reachable through this path.
func (s *EmployeeService) Update(ctx context.Context, id string, update repository.EmployeeUpdate) (*domain.Employee, error) {
	employee, err := s.employees.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return employee, nil
}

// Delete hard-deletes an employee; a second delete of the same id reports
// not-found. The removed record's identity is returned to the caller.
func (s *EmployeeService) Delete(ctx context.Context, id string) (*domain.Employee, error) {
	employee, err := s.employees.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	if err := s.employees.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("employee")
		}
		return nil, err
	}
	return employee, nil
}
