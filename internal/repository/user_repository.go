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

// UserRepository defines persistence access for end-users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, int, error)
	Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// UserFilter defines query params for user listing.
type UserFilter struct {
	City     *string
	Referral *string
	Sort     string
	PageRequest
}

// UserUpdate carries partial updates. Password and referral are excluded from
// direct overwrite on purpose.
type UserUpdate struct {
	FirstName   *string
	LastName    *string
	Email       *string
	PhoneNumber *string
	Age         *int
	City        *string
}

var userSortColumns = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"age":       "age",
	"city":      "city",
	"createdAt": "created_at",
}

const userColumns = `id, first_name, last_name, email, phone_number, age, city, password_hash, referral, created_at, updated_at`

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (first_name, last_name, email, phone_number, age, city, password_hash, referral)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PhoneNumber,
		user.Age,
		user.City,
		user.PasswordHash,
		user.Referral,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return apperrors.NewDuplicate("email")
	}
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]domain.User, int, error) {
	args := []any{}
	clauses := []string{}

	if filter.City != nil {
		args = append(args, *filter.City)
		clauses = append(clauses, fmt.Sprintf("city=$%d", len(args)))
	}
	if filter.Referral != nil {
		args = append(args, *filter.Referral)
		clauses = append(clauses, fmt.Sprintf("referral=$%d", len(args)))
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	page := filter.Normalize()
	query := `SELECT ` + userColumns + ` FROM users` + where +
		` ORDER BY ` + orderClause(filter.Sort, userSortColumns, "created_at DESC") +
		fmt.Sprintf(` LIMIT %d OFFSET %d`, page.Limit, page.Offset())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var result []domain.User
	for rows.Next() {
		var user domain.User
		if err := r.scanRow(rows, &user); err != nil {
			return nil, 0, err
		}
		result = append(result, user)
	}
	return result, total, rows.Err()
}

func (r *userRepository) Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	args := []any{}
	sets := []string{}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}

	if update.FirstName != nil {
		appendSet("first_name", *update.FirstName)
	}
	if update.LastName != nil {
		appendSet("last_name", *update.LastName)
	}
	if update.Email != nil {
		appendSet("email", *update.Email)
	}
	if update.PhoneNumber != nil {
		appendSet("phone_number", *update.PhoneNumber)
	}
	if update.Age != nil {
		appendSet("age", *update.Age)
	}
	if update.City != nil {
		appendSet("city", *update.City)
	}
	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at=NOW()")
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE users SET %s WHERE id=$%d RETURNING `+userColumns,
		strings.Join(sets, ", "), len(args))

	user, err := r.scanOne(r.pool.QueryRow(ctx, query, args...))
	if err != nil && isUniqueViolation(err) {
		return nil, apperrors.NewDuplicate("email")
	}
	return user, err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) scanOne(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := r.scanRow(row, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) scanRow(row pgx.Row, user *domain.User) error {
	return row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PhoneNumber,
		&user.Age,
		&user.City,
		&user.PasswordHash,
		&user.Referral,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
}
