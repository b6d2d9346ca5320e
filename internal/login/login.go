// Package login orchestrates credential verification and registration.
package login

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/auth"
	"github.com/wolfeidau/userhub/internal/models"
	"github.com/wolfeidau/userhub/internal/password"
	"github.com/wolfeidau/userhub/internal/store"
	"github.com/wolfeidau/userhub/internal/telemetry"
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
// The two cases are deliberately indistinguishable so login responses don't
// reveal whether an account exists.
var ErrInvalidCredentials = errors.New("invalid email or password")

// Service verifies credentials and creates accounts against the user store.
type Service struct {
	users store.UserStore
	codec *auth.Codec
}

// NewService creates a login service.
func NewService(users store.UserStore, codec *auth.Codec) *Service {
	return &Service{
		users: users,
		codec: codec,
	}
}

// Login verifies an email/password pair and, on success, issues a session
// token for the matching user.
func (s *Service) Login(ctx context.Context, email, plaintext string) (*models.User, string, error) {
	metrics := telemetry.GetMetrics()

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			metrics.LoginFailuresTotal.Add(ctx, 1)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !password.Compare(plaintext, user.PasswordHash) {
		log.Debug().Str("user_id", user.UserID.String()).Msg("Password mismatch")
		metrics.LoginFailuresTotal.Add(ctx, 1)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.codec.Issue(auth.Identity{UserID: user.UserID, Role: user.Role})
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	log.Info().Str("user_id", user.UserID.String()).Str("role", user.Role).Msg("User logged in")
	metrics.LoginsTotal.Add(ctx, 1)

	return user, token, nil
}

// RegisterParams are the fields accepted at registration.
// The address fields are only stored when all three are present, matching
// the registration form which collects them as a unit.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	CEP      *string
	City     *string
	State    *string
}

// Register creates a new USER-role account. Returns store.ErrEmailTaken if
// the email is already registered.
func (s *Service) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	hash, err := password.Hash(params.Password)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate user id: %w", err)
	}

	now := time.Now()
	user := &models.User{
		UserID:       userID,
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: hash,
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if params.CEP != nil && params.City != nil && params.State != nil {
		user.CEP = params.CEP
		user.City = params.City
		user.State = params.State
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.UserID.String()).Msg("User registered")
	telemetry.GetMetrics().RegistrationsTotal.Add(ctx, 1)

	return user, nil
}
