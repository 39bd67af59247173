package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/referral-service/internal/domain"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// SubadminRepository handles persistence for subadmin accounts.
type SubadminRepository interface {
	Create(ctx context.Context, subadmin *domain.Subadmin) error
	GetByID(ctx context.Context, id string) (*domain.Subadmin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Subadmin, error)
	List(ctx context.Context) ([]domain.Subadmin, error)
}

type subadminRepository struct {
	pool *pgxpool.Pool
}

// NewSubadminRepository instantiates the repository.
func NewSubadminRepository(pool *pgxpool.Pool) SubadminRepository {
	return &subadminRepository{pool: pool}
}

func (r *subadminRepository) Create(ctx context.Context, subadmin *domain.Subadmin) error {
	const query = `
        INSERT INTO subadmins (email, password_hash)
        VALUES ($1, $2)
        RETURNING id, created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		subadmin.Email,
		subadmin.PasswordHash,
	).Scan(&subadmin.ID, &subadmin.CreatedAt, &subadmin.UpdatedAt)
	if err != nil && isUniqueViolation(err) {
		return apperrors.NewDuplicate("email")
	}
	return err
}

func (r *subadminRepository) GetByID(ctx context.Context, id string) (*domain.Subadmin, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM subadmins WHERE id=$1`

	var subadmin domain.Subadmin
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&subadmin.ID,
		&subadmin.Email,
		&subadmin.PasswordHash,
		&subadmin.CreatedAt,
		&subadmin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &subadmin, nil
}

func (r *subadminRepository) GetByEmail(ctx context.Context, email string) (*domain.Subadmin, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM subadmins WHERE email=$1`

	var subadmin domain.Subadmin
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&subadmin.ID,
		&subadmin.Email,
		&subadmin.PasswordHash,
		&subadmin.CreatedAt,
		&subadmin.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &subadmin, nil
}

func (r *subadminRepository) List(ctx context.Context) ([]domain.Subadmin, error) {
	const query = `
        SELECT id, email, password_hash, created_at, updated_at
        FROM subadmins ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Subadmin
	for rows.Next() {
		var subadmin domain.Subadmin
		if err := rows.Scan(
			&subadmin.ID,
			&subadmin.Email,
			&subadmin.PasswordHash,
			&subadmin.CreatedAt,
			&subadmin.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, subadmin)
	}
	return result, rows.Err()
}
