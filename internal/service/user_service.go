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

// UserService orchestrates end-user CRUD. User creation runs the referral
// integrity gate before anything is written.
type UserService struct {
	users      repository.UserRepository
	employees  repository.EmployeeRepository
	referrals  *ReferralChecker
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, employees repository.EmployeeRepository, referrals *ReferralChecker, bcryptCost int) *UserService {
	return &UserService{users: users, employees: employees, referrals: referrals, bcryptCost: bcryptCost}
}

// UserListResult bundles a page of users with pagination data.
type UserListResult struct {
	Users      []domain.User
	Referrers  map[string]*domain.Employee
	Total      int
	Pagination repository.Pagination
}

// CreateUserInput carries the fields accepted at signup.
type CreateUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	Age         int
	City        string
	Password    string
	Referral    *string
}

// Create validates the referral synchronously, then hashes the password and
// persists the user. A failed referral check means no user row exists.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := s.referrals.CheckReferral(ctx, input.Referral); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	referral := input.Referral
	if referral != nil && *referral == "" {
		referral = nil
	}
	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PhoneNumber:  input.PhoneNumber,
		Age:          input.Age,
		City:         input.City,
		PasswordHash: hash,
		Referral:     referral,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// List returns a page of users plus a lookup of the employees they were
// referred by, for response shaping.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) (*UserListResult, error) {
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	referrers, err := s.loadReferrers(ctx, users)
	if err != nil {
		return nil, err
	}

	return &UserListResult{
		Users:      users,
		Referrers:  referrers,
		Total:      total,
		Pagination: repository.BuildPagination(filter.PageRequest, total),
	}, nil
}

// Get returns a single user and, when set, its referring employee.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, *domain.Employee, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user")
		}
		return nil, nil, err
	}

	var referrer *domain.Employee
	if user.Referral != nil {
		// The referral gate only ran at create time; the employee may be
		// gone by now, which reads as an absent referrer.
		referrer, err = s.employees.GetByID(ctx, *user.Referral)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, err
		}
	}
	return user, referrer, nil
}

// Update applies a partial update; password and referral are excluded from
// direct overwrite, so a stored hash can never be re-hashed here.
func (s *UserService) Update(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	user, err := s.users.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// Delete hard-deletes a user; the second delete of an id reports not-found.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	return nil
}

func (s *UserService) loadReferrers(ctx context.Context, users []domain.User) (map[string]*domain.Employee, error) {
	referrers := make(map[string]*domain.Employee)
	for i := range users {
		ref := users[i].Referral
		if ref == nil {
			continue
		}
		if _, seen := referrers[*ref]; seen {
			continue
		}
		employee, err := s.employees.GetByID(ctx, *ref)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, err
		}
		referrers[*ref] = employee
	}
	return referrers, nil
}
