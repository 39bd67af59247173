package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

const testBcryptCost = 4

func strPtr(s string) *string { return &s }

func TestUserService_Create_UnknownReferralBlocksInsert(t *testing.T) {
	created := 0
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			created++
			return nil
		},
	}
	employees := &fakeEmployeeRepo{} // empty store: every GetByID is ErrNoRows

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "password1",
		Referral:  strPtr("missing-employee"),
	})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", de.Code)
	assert.Zero(t, created, "a failed referral check must leave no user row")
}

func TestUserService_Create_MalformedReferralIsBadRequest(t *testing.T) {
	created := 0
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			created++
			return nil
		},
	}
	// A non-UUID id never reaches row matching; the store rejects it outright.
	employees := &fakeEmployeeRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Employee, error) {
			return nil, &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}
		},
	}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "password1",
		Referral:  strPtr("not-a-uuid"),
	})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
	assert.Zero(t, created)
}

func TestUserService_Get_MalformedIDIsBadRequest(t *testing.T) {
	users := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"}
		},
	}
	svc := NewUserService(users, &fakeEmployeeRepo{}, NewReferralChecker(&fakeEmployeeRepo{}), testBcryptCost)

	_, _, err := svc.Get(context.Background(), "not-a-uuid")
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "VALIDATION_FAILED", de.Code)
	assert.Equal(t, 400, de.HTTPStatus)
}

func TestUserService_Create_NoReferral(t *testing.T) {
	var stored *domain.User
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			user.ID = "user-1"
			stored = user
			return nil
		},
	}
	employees := &fakeEmployeeRepo{}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	user, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "password1",
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	assert.Nil(t, stored.Referral)
	assert.NotEqual(t, "password1", stored.PasswordHash, "password must be stored hashed")
	assert.Equal(t, "user-1", user.ID)
}

func TestUserService_Create_EmptyReferralNormalizedToNil(t *testing.T) {
	var stored *domain.User
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}
	employees := &fakeEmployeeRepo{}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "password1",
		Referral:  strPtr(""),
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.Referral)
}

func TestUserService_Create_ValidReferralStored(t *testing.T) {
	employee := &domain.Employee{ID: "emp-1", FullName: "Referrer"}
	employees := &fakeEmployeeRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Employee, error) {
			if id == employee.ID {
				return employee, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	var stored *domain.User
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			stored = user
			return nil
		},
	}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "jo@example.com",
		Password:  "password1",
		Referral:  strPtr("emp-1"),
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotNil(t, stored.Referral)
	assert.Equal(t, "emp-1", *stored.Referral)
}

func TestUserService_Create_DuplicateEmailPropagates(t *testing.T) {
	users := &fakeUserRepo{
		CreateFn: func(ctx context.Context, user *domain.User) error {
			return apperrors.NewDuplicate("email")
		},
	}
	employees := &fakeEmployeeRepo{}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	_, err := svc.Create(context.Background(), CreateUserInput{
		FirstName: "Jo",
		LastName:  "Doe",
		Email:     "taken@example.com",
		Password:  "password1",
	})
	require.Error(t, err)

	de := apperrors.ToDomainError(err)
	assert.Equal(t, "DUPLICATE", de.Code)
	assert.Equal(t, "email already exists", de.Message)
}

func TestUserService_List_ResolvesReferrers(t *testing.T) {
	employee := domain.Employee{ID: "emp-1", FullName: "Referrer"}
	lookups := 0
	employees := &fakeEmployeeRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.Employee, error) {
			lookups++
			if id == employee.ID {
				e := employee
				return &e, nil
			}
			return nil, pgx.ErrNoRows
		},
	}
	users := &fakeUserRepo{
		ListFn: func(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
			return []domain.User{
				{ID: "u1", Referral: strPtr("emp-1")},
				{ID: "u2", Referral: strPtr("emp-1")},
				{ID: "u3"},
				{ID: "u4", Referral: strPtr("gone")},
			}, 4, nil
		},
	}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	result, err := svc.List(context.Background(), repository.UserFilter{})
	require.NoError(t, err)

	assert.Equal(t, 4, result.Total)
	assert.Len(t, result.Referrers, 1)
	assert.Equal(t, "Referrer", result.Referrers["emp-1"].FullName)
	// Shared referral resolved once; one extra lookup for the dangling id.
	assert.Equal(t, 2, lookups)
}

func TestUserService_Get_ToleratesDeletedReferrer(t *testing.T) {
	users := &fakeUserRepo{
		GetByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Referral: strPtr("gone-employee")}, nil
		},
	}
	employees := &fakeEmployeeRepo{}

	svc := NewUserService(users, employees, NewReferralChecker(employees), testBcryptCost)

	user, referrer, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Nil(t, referrer)
}

func TestUserService_Get_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeEmployeeRepo{}, NewReferralChecker(&fakeEmployeeRepo{}), testBcryptCost)

	_, _, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{}, &fakeEmployeeRepo{}, NewReferralChecker(&fakeEmployeeRepo{}), testBcryptCost)

	_, err := svc.Update(context.Background(), "missing", repository.UserUpdate{City: strPtr("Berlin")})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}

func TestUserService_Delete_SecondDeleteNotFound(t *testing.T) {
	deleted := map[string]bool{}
	users := &fakeUserRepo{
		DeleteFn: func(ctx context.Context, id string) error {
			if deleted[id] {
				return pgx.ErrNoRows
			}
			deleted[id] = true
			return nil
		},
	}

	svc := NewUserService(users, &fakeEmployeeRepo{}, NewReferralChecker(&fakeEmployeeRepo{}), testBcryptCost)

	require.NoError(t, svc.Delete(context.Background(), "u1"))

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
