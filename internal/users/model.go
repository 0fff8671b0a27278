package users

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and never
// leaves this package.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
