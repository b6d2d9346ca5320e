package server

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/auth"
	httpmiddleware "github.com/wolfeidau/userhub/internal/http"
	"github.com/wolfeidau/userhub/internal/login"
	"github.com/wolfeidau/userhub/internal/password"
	"github.com/wolfeidau/userhub/internal/store"
)

// UserService serves the public auth endpoints and the authenticated
// self-service profile endpoints.
type UserService struct {
	users store.UserStore
	login *login.Service
}

// NewUserService creates a new user service.
func NewUserService(users store.UserStore, loginService *login.Service) *UserService {
	return &UserService{
		users: users,
		login: loginService,
	}
}

// Login handles POST /api/login. On success it sets the session cookie and
// returns the user without the password hash.
func (s *UserService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if fields := req.Validate(); fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	user, token, err := s.login.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, login.ErrInvalidCredentials) {
			log.Info().
				Str("ip", httpmiddleware.ClientIPFromContext(r.Context())).
				Msg("Login rejected")
			writeError(w, http.StatusUnauthorized, "Invalid email or password.")
			return
		}
		writeStoreError(w, err)
		return
	}

	auth.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Login successful",
		"user":    user.Public(),
	})
}

// Logout handles POST /api/logout. Sessions are stateless, so logout is
// just clearing the cookie.
func (s *UserService) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// Register handles POST /api/register.
func (s *UserService) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if fields := req.Validate(); fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	user, err := s.login.Register(r.Context(), login.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		CEP:      req.CEP,
		City:     req.City,
		State:    req.State,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "User registered successfully",
		"user":    user.Public(),
	})
}

// Me handles GET /api/users/me. The guard has already resolved the session;
// the record is still fetched fresh so a deleted user gets a 404 rather
// than a ghost profile from token claims.
func (s *UserService) Me(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := s.users.GetByID(r.Context(), identity.UserID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user.Public())
}

// UpdateMe handles PUT /api/users/me.
func (s *UserService) UpdateMe(w http.ResponseWriter, r *http.Request) {
	identity := auth.IdentityFromContext(r.Context())
	if identity == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req updateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	if fields := req.Validate(); fields != nil {
		writeFieldErrors(w, fields)
		return
	}

	update := &store.UserUpdate{
		Name:  req.Name,
		CEP:   req.CEP,
		City:  req.City,
		State: req.State,
	}

	if req.Password != nil {
		hash, err := password.Hash(*req.Password)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		update.PasswordHash = &hash
	}

	user, err := s.users.Update(r.Context(), identity.UserID, update)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "User updated successfully",
		"user":    user.Public(),
	})
}
