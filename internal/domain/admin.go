package domain

import "time"

// Admin is seeded out-of-band and never created through the public API.
type Admin struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
