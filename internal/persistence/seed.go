package persistence

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/referral-service/internal/auth"
	"github.com/spec-kit/referral-service/internal/config"
	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
)

// SeedAdmin ensures the configured admin account exists. Admins are never
// created through the public API; this is the out-of-band lifecycle.
func SeedAdmin(ctx context.Context, repo repository.AdminRepository, cfg config.Config, logger *zap.Logger) error {
	if cfg.Seed.AdminEmail == "" || cfg.Seed.AdminPassword == "" {
		logger.Info("admin seed not configured; skipping")
		return nil
	}

	_, err := repo.GetByEmail(ctx, cfg.Seed.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(cfg.Seed.AdminPassword, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	admin := &domain.Admin{Email: cfg.Seed.AdminEmail, PasswordHash: hash}
	if err := repo.Create(ctx, admin); err != nil {
		return err
	}
	logger.Info("seeded admin account", zap.String("email", cfg.Seed.AdminEmail))
	return nil
}
