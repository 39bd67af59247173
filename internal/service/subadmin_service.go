package service

import (
	"context"

	"github.com/spec-kit/referral-service/internal/domain"
	"github.com/spec-kit/referral-service/internal/repository"
	apperrors "github.com/spec-kit/referral-service/pkg/util"
)

// SubadminService exposes the admin-facing subadmin directory.
type SubadminService struct {
	subadmins repository.SubadminRepository
}

// NewSubadminService builds the service.
func NewSubadminService(subadmins repository.SubadminRepository) *SubadminService {
	return &SubadminService{subadmins: subadmins}
}

// List returns all subadmins. An empty directory is a not-found condition,
// matching the listing's original behavior.
func (s *SubadminService) List(ctx context.Context) ([]domain.Subadmin, error) {
	subadmins, err := s.subadmins.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(subadmins) == 0 {
		return nil, apperrors.NewNotFound("subadmins")
	}
	return subadmins, nil
}
