package domain

import "time"

// User is an end-user account. Referral optionally names the Employee who
// referred this user; it is validated at create time only, so the referenced
// employee may later be deleted without cascading.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	Age          int
	City         string
	PasswordHash string
	Referral     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
