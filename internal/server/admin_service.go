package server

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/wolfeidau/userhub/internal/auth"
	"github.com/wolfeidau/userhub/internal/models"
	"github.com/wolfeidau/userhub/internal/password"
	"github.com/wolfeidau/userhub/internal/store"
)

// AdminService serves the ADMIN-gated user management endpoints.
// The role check itself lives in the auth.RequireAdmin guard.
type AdminService struct {
	users store.UserStore
}

// NewAdminService creates a new admin service.
func NewAdminService(users store.UserStore) *AdminService {
	return &AdminService{
		users: users,
	}
}

// ListUsers handles GET /api/admin/users.
func (s *AdminService) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		writeStoreError(w, err)
		return
	}

	projection := make([]models.PublicUser, 0, len(users))
	for _, user := range users {
		projection = append(projection, user.Public())
	}

	writeJSON(w, http.StatusOK, projection)
}

// UpdateUser handles PATCH /api/admin/users/{id}.
func (s *AdminService) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	var req adminUpdateUserRequest
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
		Email: req.Email,
		Role:  req.Role,
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

	user, err := s.users.Update(r.Context(), userID, update)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	admin := auth.IdentityFromContext(r.Context())
	log.Info().
		Str("admin_id", admin.UserID.String()).
		Str("user_id", userID.String()).
		Msg("Admin updated user")

	writeJSON(w, http.StatusOK, user.Public())
}

// DeleteUser handles DELETE /api/admin/users/{id}.
func (s *AdminService) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}

	if err := s.users.Delete(r.Context(), userID); err != nil {
		writeStoreError(w, err)
		return
	}

	admin := auth.IdentityFromContext(r.Context())
	log.Info().
		Str("admin_id", admin.UserID.String()).
		Str("user_id", userID.String()).
		Msg("Admin deleted user")

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully."})
}
