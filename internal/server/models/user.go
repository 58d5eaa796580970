package models

import "time"

// User is an account holder. PasswordHash is the bcrypt output, never the
// plaintext. Optional profile fields are nil when unset.
type User struct {
	ID           string
	UserName     string
	FirstName    *string
	LastName     *string
	Email        *string
	PasswordHash string
	CreatedAt    time.Time
}
