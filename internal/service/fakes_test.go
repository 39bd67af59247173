package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
)

// Function-field fakes: tests plug in only the calls they care about, and
// anything unset behaves like an empty store.

type fakeUserRepo struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error)
	UpdateFn     func(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error)
	DeleteFn     func(ctx context.Context, id string) error
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, user)
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if f.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if f.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int, error) {
	if f.ListFn == nil {
		return nil, 0, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, update repository.UserUpdate) (*domain.User, error) {
	if f.UpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.UpdateFn(ctx, id, update)
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn == nil {
		return pgx.ErrNoRows
	}
	return f.DeleteFn(ctx, id)
}

type fakeEmployeeRepo struct {
	CreateFn             func(ctx context.Context, employee *domain.Employee) error
	GetByIDFn            func(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmailFn         func(ctx context.Context, email string) (*domain.Employee, error)
	ListFn               func(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, int, error)
	ListByReferralCodeFn func(ctx context.Context, code string) ([]domain.Employee, error)
	ListByReferredByFn   func(ctx context.Context, userID string) ([]domain.Employee, error)
	UpdateFn             func(ctx context.Context, id string, update repository.EmployeeUpdate) (*domain.Employee, error)
	TouchLastLoginFn     func(ctx context.Context, id string) error
	DeleteFn             func(ctx context.Context, id string) error
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, employee *domain.Employee) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, employee)
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	if f.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeEmployeeRepo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	if f.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeEmployeeRepo) List(ctx context.Context, filter repository.EmployeeFilter) ([]domain.Employee, int, error) {
	if f.ListFn == nil {
		return nil, 0, nil
	}
	return f.ListFn(ctx, filter)
}

func (f *fakeEmployeeRepo) ListByReferralCode(ctx context.Context, code string) ([]domain.Employee, error) {
	if f.ListByReferralCodeFn == nil {
		return nil, nil
	}
	return f.ListByReferralCodeFn(ctx, code)
}

func (f *fakeEmployeeRepo) ListByReferredBy(ctx context.Context, userID string) ([]domain.Employee, error) {
	if f.ListByReferredByFn == nil {
		return nil, nil
	}
	return f.ListByReferredByFn(ctx, userID)
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, update repository.EmployeeUpdate) (*domain.Employee, error) {
	if f.UpdateFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.UpdateFn(ctx, id, update)
}

func (f *fakeEmployeeRepo) TouchLastLogin(ctx context.Context, id string) error {
	if f.TouchLastLoginFn == nil {
		return nil
	}
	return f.TouchLastLoginFn(ctx, id)
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	if f.DeleteFn == nil {
		return pgx.ErrNoRows
	}
	return f.DeleteFn(ctx, id)
}

type fakeSubadminRepo struct {
	CreateFn     func(ctx context.Context, subadmin *domain.Subadmin) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Subadmin, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Subadmin, error)
	ListFn       func(ctx context.Context) ([]domain.Subadmin, error)
}

func (f *fakeSubadminRepo) Create(ctx context.Context, subadmin *domain.Subadmin) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, subadmin)
}

func (f *fakeSubadminRepo) GetByID(ctx context.Context, id string) (*domain.Subadmin, error) {
	if f.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeSubadminRepo) GetByEmail(ctx context.Context, email string) (*domain.Subadmin, error) {
	if f.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByEmailFn(ctx, email)
}

func (f *fakeSubadminRepo) List(ctx context.Context) ([]domain.Subadmin, error) {
	if f.ListFn == nil {
		return nil, nil
	}
	return f.ListFn(ctx)
}

type fakeAdminRepo struct {
	CreateFn     func(ctx context.Context, admin *domain.Admin) error
	GetByIDFn    func(ctx context.Context, id string) (*domain.Admin, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.Admin, error)
}

func (f *fakeAdminRepo) Create(ctx context.Context, admin *domain.Admin) error {
	if f.CreateFn == nil {
		return nil
	}
	return f.CreateFn(ctx, admin)
}

func (f *fakeAdminRepo) GetByID(ctx context.Context, id string) (*domain.Admin, error) {
	if f.GetByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if f.GetByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return f.GetByEmailFn(ctx, email)
}
