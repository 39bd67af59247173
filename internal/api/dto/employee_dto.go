package dto

import (
	"github.com/spec-kit/referral-service/internal/domain"
)

// EmployeeCreateRequest payload for administrative employee adds.
type EmployeeCreateRequest struct {
	FullName     string `json:"fullName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=6"`
	ReferralCode string `json:"referralCode"`
	Status       string `json:"status" validate:"omitempty,oneof=pending active inactive"`
}

// EmployeeUpdateRequest payload for partial employee updates. Password and
// referral fields are not accepted here.
type EmployeeUpdateRequest struct {
	FullName *string `json:"fullName" validate:"omitempty,min=1"`
	Status   *string `json:"status" validate:"omitempty,oneof=pending active inactive"`
}

// EmployeeView shapes an employee for responses, honoring an optional field
// selection. The password hash is never part of the view; id always is.
func EmployeeView(e *domain.Employee, fields []string) map[string]any {
	full := map[string]any{
		"id":           e.ID,
		"fullName":     e.FullName,
		"email":        e.Email,
		"referralCode": e.ReferralCode,
		"referredBy":   e.ReferredBy,
		"status":       e.Status,
		"lastLogin":    e.LastLogin,
		"createdAt":    e.CreatedAt,
		"updatedAt":    e.UpdatedAt,
	}
	return selectFields(full, fields)
}

// EmployeeSummary is the compact shape used when embedding an employee in
// another record's response.
func EmployeeSummary(e *domain.Employee) map[string]any {
	if e == nil {
		return nil
	}
	return map[string]any{
		"id":       e.ID,
		"fullName": e.FullName,
		"email":    e.Email,
	}
}

// selectFields keeps only the requested fields of a view; unknown names are
// ignored, the id is always retained, and an empty selection means the full
// view.
func selectFields(full map[string]any, fields []string) map[string]any {
	if len(fields) == 0 {
		return full
	}
	out := map[string]any{"id": full["id"]}
	for _, f := range fields {
		if val, ok := full[f]; ok {
			out[f] = val
		}
	}
	return out
}
