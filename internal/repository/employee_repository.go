package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// EmployeeRepository handles persistence for employees.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	GetByEmail(ctx context.Context, email string) (*domain.Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int, error)
	ListByReferralCode(ctx context.Context, code string) ([]domain.Employee, error)
	ListByReferredBy(ctx context.Context, userID string) ([]domain.Employee, error)
	Update(ctx context.Context, id string, update EmployeeUpdate) (*domain.Employee, error)
	TouchLastLogin(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// EmployeeFilter defines query params for employee listing.
type EmployeeFilter struct {
	Status     *domain.EmployeeStatus
	ReferredBy *string
	Sort       string
	PageRequest
}

// EmployeeUpdate carries partial updates. Password and referral fields are
// deliberately absent; they are never overwritten through this path.
type EmployeeUpdate struct {
	FullName *string
	Status   *domain.EmployeeStatus
}

var employeeSortColumns = map[string]string{
	"fullName":  "full_name",
	"email":     "email",
	"status":    "status",
	"createdAt": "created_at",
	"lastLogin": "last_login",
}

const employeeColumns = `id, full_name, email, password_hash, referral_code, referred_by, status, last_login, created_at, updated_at`

type employeeRepository struct {
	pool *pgxpool.Pool
}

// NewEmployeeRepository instantiates the repository.
func NewEmployeeRepository(pool *pgxpool.Pool) EmployeeRepository {
	return &employeeRepository{pool: pool}
}

func (r *employeeRepository) Create(ctx context.Context, employee *domain.Employee) error {
	const query = `
        INSERT INTO employees (full_name, email, password_hash, referral_code, referred_by, status)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		employee.FullName,
		employee.Email,
		employee.PasswordHash,
		employee.ReferralCode,
		employee.ReferredBy,
		employee.Status,
	).Scan(&employee.ID, &employee.CreatedAt, &employee.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return apperrors.NewDuplicate("email")
	}
	return err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *employeeRepository) List(ctx context.Context, filter EmployeeFilter) ([]domain.Employee, int, error) {
	args := []any{}
	clauses := []string{}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.ReferredBy != nil {
		args = append(args, *filter.ReferredBy)
		clauses = append(clauses, fmt.Sprintf("referred_by=$%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	// Total of the filtered set, not the returned slice.
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM employees`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Normalize()
	query := `SELECT ` + employeeColumns + ` FROM employees` + where +
		` ORDER BY ` + orderClause(filter.Sort, employeeSortColumns, "created_at DESC") +
		fmt.Sprintf(` LIMIT %d OFFSET %d`, page.Limit, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	result, err := r.scanMany(rows)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (r *employeeRepository) ListByReferralCode(ctx context.Context, code string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE referral_code=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, code)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *employeeRepository) ListByReferredBy(ctx context.Context, userID string) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE referred_by=$1 ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *employeeRepository) Update(ctx context.Context, id string, update EmployeeUpdate) (*domain.Employee, error) {
	args := []any{}
	sets := []string{}

	if update.FullName != nil {
		args = append(args, *update.FullName)
		sets = append(sets, fmt.Sprintf("full_name=$%d", len(args)))
	}
	if update.Status != nil {
		args = append(args, *update.Status)
		sets = append(sets, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE employees SET %s WHERE id=$%d RETURNING `+employeeColumns,
		strings.Join(sets, ", "), len(args))

	return r.scanOne(r.pool.QueryRow(ctx, query, args...))
}

func (r *employeeRepository) TouchLastLogin(ctx context.Context, id string) error {
	const query = `UPDATE employees SET last_login=NOW(), updated_at=NOW() WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM employees WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *employeeRepository) scanOne(row pgx.Row) (*domain.Employee, error) {
	var employee domain.Employee
	if err := row.Scan(
		&employee.ID,
		&employee.FullName,
		&employee.Email,
		&employee.PasswordHash,
		&employee.ReferralCode,
		&employee.ReferredBy,
		&employee.Status,
		&employee.LastLogin,
		&employee.CreatedAt,
		&employee.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) scanMany(rows pgx.Rows) ([]domain.Employee, error) {
	var result []domain.Employee
	for rows.Next() {
		var employee domain.Employee
		if err := rows.Scan(
			&employee.ID,
			&employee.FullName,
			&employee.Email,
			&employee.PasswordHash,
			&employee.ReferralCode,
			&employee.ReferredBy,
			&employee.Status,
			&employee.LastLogin,
			&employee.CreatedAt,
			&employee.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, employee)
	}
	return result, rows.Err()
}
