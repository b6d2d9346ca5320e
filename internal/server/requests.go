package server

import (
	"net/mail"
	"unicode/utf8"

	"github.com/wolfeidau/userhub/internal/models"
)

const (
	minNameLength     = 3
	minPasswordLength = 6
)

func validEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate returns field-level errors, empty when the request is well formed.
func (r *loginRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if !validEmail(r.Email) {
		fields["email"] = "Invalid email format."
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters long."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

type registerRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	CEP      *string `json:"cep,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
}

func (r *registerRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if utf8.RuneCountInString(r.Name) < minNameLength {
		fields["name"] = "Name must be at least 3 characters long."
	}
	if !validEmail(r.Email) {
		fields["email"] = "Invalid email format."
	}
	if utf8.RuneCountInString(r.Password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters long."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// updateUserRequest covers both the self-service profile update and the
// admin update. All fields are optional; nil means unchanged.
type updateUserRequest struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	CEP      *string `json:"cep,omitempty"`
	City     *string `json:"city,omitempty"`
	State    *string `json:"state,omitempty"`
}

func (r *updateUserRequest) Validate() map[string]string {
	fields := make(map[string]string)
	if r.Name != nil && utf8.RuneCountInString(*r.Name) < minNameLength {
		fields["name"] = "Name must be at least 3 characters long."
	}
	if r.Password != nil && utf8.RuneCountInString(*r.Password) < minPasswordLength {
		fields["password"] = "Password must be at least 6 characters long."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// adminUpdateUserRequest additionally allows changing email and role.
type adminUpdateUserRequest struct {
	updateUserRequest
	Email *string `json:"email,omitempty"`
	Role  *string `json:"role,omitempty"`
}

func (r *adminUpdateUserRequest) Validate() map[string]string {
	fields := r.updateUserRequest.Validate()
	if fields == nil {
		fields = make(map[string]string)
	}
	if r.Email != nil && !validEmail(*r.Email) {
		fields["email"] = "Invalid email format."
	}
	if r.Role != nil && *r.Role != models.RoleUser && *r.Role != models.RoleAdmin {
		fields["role"] = "Role must be USER or ADMIN."
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
