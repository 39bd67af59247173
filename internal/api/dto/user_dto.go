package dto

import (
	"github.com/spec-kit/referral-service/internal/domain"
)

// UserCreateRequest payload for end-user signup.
type UserCreateRequest struct {
	FirstName   string  `json:"firstName" validate:"required,max=50"`
	LastName    string  `json:"lastName" validate:"required,max=50"`
	Email       string  `json:"email" validate:"required,email"`
	PhoneNumber string  `json:"phoneNumber" validate:"required"`
	Age         int     `json:"age" validate:"required,gte=18,lte=100"`
	City        string  `json:"city" validate:"required,max=50"`
	Password    string  `json:"password" validate:"required,min=6"`
	Referral    *string `json:"referral"`
}

// UserUpdateRequest payload for partial user updates. Password and referral
// are deliberately absent from this shape.
type UserUpdateRequest struct {
	FirstName   *string `json:"firstName" validate:"omitempty,max=50"`
	LastName    *string `json:"lastName" validate:"omitempty,max=50"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phoneNumber"`
	Age         *int    `json:"age" validate:"omitempty,gte=18,lte=100"`
	City        *string `json:"city" validate:"omitempty,max=50"`
}

// UserView shapes a user for responses with an optional referring-employee
// summary. The password hash is never part of the view.
func UserView(u *domain.User, referrer *domain.Employee, fields []string) map[string]any {
	full := map[string]any{
		"id":          u.ID,
		"firstName":   u.FirstName,
		"lastName":    u.LastName,
		"email":       u.Email,
		"phoneNumber": u.PhoneNumber,
		"age":         u.Age,
		"city":        u.City,
		"referral":    EmployeeSummary(referrer),
		"createdAt":   u.CreatedAt,
		"updatedAt":   u.UpdatedAt,
	}
	if referrer == nil && u.Referral != nil {
		full["referral"] = *u.Referral
	}
	return selectFields(full, fields)
}
