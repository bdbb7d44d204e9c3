// Package users provides account registration, credential verification, and
// identity lookup for the studykit API.
package users

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account.
// PasswordHash never leaves the service boundary.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfileImage string    `json:"profileImage"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterCommand contains the data required to create a new account.
type RegisterCommand struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields before any storage work happens.
func (c *RegisterCommand) Validate() error {
	if c.Username == "" || c.Email == "" || c.Password == "" {
		return fmt.Errorf("%w: all fields are required", ErrValidation)
	}
	if len(c.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	if len(c.Username) < 3 {
		return fmt.Errorf("%w: username must be at least 3 characters", ErrValidation)
	}
	return nil
}

// LoginCommand contains the credentials presented at login.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DefaultProfileImage returns the generated avatar URL for a new account.
func DefaultProfileImage(username string) string {
	return "https://api.dicebear.com/7.x/avataaars/svg?seed=" + username
}
