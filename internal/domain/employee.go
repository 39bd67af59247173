package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// EmployeeStatus represents lifecycle states for an employee.
type EmployeeStatus string

const (
	EmployeeStatusPending  EmployeeStatus = "pending"
	EmployeeStatusActive   EmployeeStatus = "active"
	EmployeeStatusInactive EmployeeStatus = "inactive"
)

// Employee models a staff member who can refer end-users. ReferralCode is the
// employee's own code presented by users at signup; ReferredBy points back at
// the User who referred this employee, when any.
type Employee struct {
	ID           string
	FullName     string
	Email        string
	PasswordHash string
	ReferralCode string
	ReferredBy   *string
	Status       EmployeeStatus
	LastLogin    *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GenerateReferralCode assigns a code built from the name prefix plus a short
// random suffix, uppercased.
func (e *Employee) GenerateReferralCode() {
	prefix := e.FullName
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	e.ReferralCode = strings.ToUpper(prefix + suffix)
}
