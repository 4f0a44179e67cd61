package domain

import "time"

// User represents a registered account. Every transaction and budget in the
// system is owned by exactly one user.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
