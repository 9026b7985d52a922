package user

import (
	"strings"
	"time"

	"github.com/gestionrodar/filmoteca/internal/security"
	"github.com/google/uuid"
)

// VerifyPassword checks a plaintext candidate against the stored hash.
// False on mismatch, never an error.
func (u User) VerifyPassword(plain string) bool {
	return security.VerifyPassword(u.PasswordHash, plain)
}

// NewFromCreateRequest builds a persistable User from a validated request.
// Hashing and timestamping happen here, as an explicit construction step,
// so the repos only ever see a finished record.
func NewFromCreateRequest(req CreateUserRequest) (User, error) {
	hash, err := security.HashPassword(req.Password)

	if err != nil {
		return User{}, err
	}

	role := req.Role

	if role == "" {
		role = RoleEditor
	}

	now := time.Now().UTC()

	return User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}
