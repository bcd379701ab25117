package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the bcrypt cost used for stored passwords.
const DefaultBcryptCost = 12

// User owns tasks. Only the default user exists in practice.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Validate checks that the user has valid field values.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return invalid("username", "is required")
	}
	if u.PasswordHash == "" {
		return invalid("password", "is required")
	}
	return nil
}

// SetPassword hashes and stores the given password.
func (u *User) SetPassword(password string, cost int) error {
	if password == "" {
		return invalid("password", "is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
