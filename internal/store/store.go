package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wolfeidau/userhub/internal/models"
)

// Sentinel errors for common error conditions
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// UserUpdate describes a partial update to a user record.
// Nil fields are left unchanged.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
	CEP          *string
	City         *string
	State        *string
}

// UserStore defines the interface for user record storage.
// Implementations: store/postgres (production), store/memory (tests and dev mode).
type UserStore interface {
	// Create inserts a new user. Returns ErrEmailTaken if the email is already in use.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID. Returns ErrUserNotFound if absent.
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by unique email. Returns ErrUserNotFound if absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update applies a partial update and returns the updated record.
	// Returns ErrUserNotFound if absent, ErrEmailTaken on an email collision.
	Update(ctx context.Context, userID uuid.UUID, update *UserUpdate) (*models.User, error)

	// Delete removes a user. Returns ErrUserNotFound if absent.
	Delete(ctx context.Context, userID uuid.UUID) error

	// List returns all users ordered by creation time.
	List(ctx context.Context) ([]*models.User, error)
}
