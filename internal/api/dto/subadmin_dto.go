package dto

import "github.com/spec-kit/referral-service/internal/domain"

// SubadminView shapes a subadmin for responses, minus the password hash.
func SubadminView(s *domain.Subadmin) map[string]any {
	return map[string]any{
		"id":        s.ID,
		"email":     s.Email,
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
}

// AdminView shapes an admin for responses, minus the password hash.
func AdminView(a *domain.Admin) map[string]any {
	return map[string]any{
		"id":        a.ID,
		"email":     a.Email,
		"role":      domain.RoleAdmin,
		"createdAt": a.CreatedAt,
		"updatedAt": a.UpdatedAt,
	}
}
