package models

import (
	"time"

	"github.com/google/uuid"
)

// Role values stored on a user record and embedded in session tokens.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an account in the system.
// The password hash never leaves the process; handlers respond with PublicUser.
type User struct {
	UserID       uuid.UUID // UUIDv7
	Name         string
	Email        string // unique
	PasswordHash string // bcrypt digest
	Role         string // "USER" or "ADMIN"

	// Optional address fields
	CEP   *string
	City  *string
	State *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAdmin returns true if the user holds the ADMIN role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the JSON projection of a user returned by the API.
// It deliberately has no password field.
type PublicUser struct {
	UserID    uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CEP       *string   `json:"cep,omitempty"`
	City      *string   `json:"city,omitempty"`
	State     *string   `json:"state,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Public returns the API projection of the user.
func (u *User) Public() PublicUser {
	return PublicUser{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CEP:       u.CEP,
		City:      u.City,
		State:     u.State,
		CreatedAt: u.CreatedAt,
	}
}
