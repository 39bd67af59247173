package domain

import "time"

// Subadmin is a self-registered operator account with no role field beyond
// its identity type.
type Subadmin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
