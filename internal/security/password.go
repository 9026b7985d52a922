package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// cost 12 keeps a single verification in the tens-of-milliseconds range.
const hashCost = 12

// MaxPasswordBytes is bcrypt's input limit; longer passwords would be
// silently truncated by the algorithm, so they are refused instead.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword hashes a plain text password with bcrypt.
func HashPassword(plain string) (string, error) {
	if len(plain) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword compares a bcrypt hash with a plaintext candidate.
// A mismatch is an ordinary false, never an error.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
