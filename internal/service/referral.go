package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/referral-service/internal/repository"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// ReferralChecker validates that a referral value, when present, names an
// existing employee. It must resolve before the user row is written; the
// check is a precondition, not a post-hoc validation.
type ReferralChecker struct {
	employees repository.EmployeeRepository
}

// NewReferralChecker builds the checker.
func NewReferralChecker(employees repository.EmployeeRepository) *ReferralChecker {
	return &ReferralChecker{employees: employees}
}

// CheckReferral returns nil for an absent referral, a NOT_FOUND error when
// the referenced employee does not exist, a validation error when the id is
// not even a well-formed UUID, and nil when the employee exists.
func (c *ReferralChecker) CheckReferral(ctx context.Context, employeeID *string) error {
	if employeeID == nil || *employeeID == "" {
		return nil
	}
	if _, err := c.employees.GetByID(ctx, *employeeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("referral employee")
		}
		if apperrors.IsInvalidIDFormat(err) {
			return apperrors.NewValidationError("invalid referral id format", nil)
		}
		return err
	}
	return nil
}
