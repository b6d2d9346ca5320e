// Package password wraps bcrypt hashing so the rest of the system treats
// password verification as an opaque collaborator.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost 10 matches the hashes already present in the database.
const hashCost = 10

// Hash returns the bcrypt digest of a plaintext password.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(digest), nil
}

// Compare reports whether the plaintext password matches the stored digest.
func Compare(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
