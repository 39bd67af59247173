package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
)

// AdminResolver resolves token subjects against the admin store.
func AdminResolver(repo repository.AdminRepository) PrincipalResolver {
	return func(ctx context.Context, subjectID string) (*Principal, error) {
		admin, err := repo.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &Principal{
			ActorType: domain.ActorTypeAdmin,
			ID:        admin.ID,
			Email:     admin.Email,
			Role:      domain.RoleFor(domain.ActorTypeAdmin),
		}, nil
	}
}

// SubadminResolver resolves token subjects against the subadmin store.
func SubadminResolver(repo repository.SubadminRepository) PrincipalResolver {
	return func(ctx context.Context, subjectID string) (*Principal, error) {
		subadmin, err := repo.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &Principal{
			ActorType: domain.ActorTypeSubadmin,
			ID:        subadmin.ID,
			Email:     subadmin.Email,
			Role:      domain.RoleFor(domain.ActorTypeSubadmin),
		}, nil
	}
}

// EmployeeResolver resolves token subjects against the employee store.
func EmployeeResolver(repo repository.EmployeeRepository) PrincipalResolver {
	return func(ctx context.Context, subjectID string) (*Principal, error) {
		employee, err := repo.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &Principal{
			ActorType: domain.ActorTypeEmployee,
			ID:        employee.ID,
			Email:     employee.Email,
			Name:      employee.FullName,
			Role:      domain.RoleFor(domain.ActorTypeEmployee),
			LastLogin: employee.LastLogin,
		}, nil
	}
}

// UserResolver resolves token subjects against the end-user store.
func UserResolver(repo repository.UserRepository) PrincipalResolver {
	return func(ctx context.Context, subjectID string) (*Principal, error) {
		user, err := repo.GetByID(ctx, subjectID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, nil
			}
			return nil, err
		}
		return &Principal{
			ActorType: domain.ActorTypeUser,
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.FirstName + " " + user.LastName,
			Role:      domain.RoleFor(domain.ActorTypeUser),
		}, nil
	}
}
