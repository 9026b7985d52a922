package auth

import (
	"errors"
	"time"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the user identity inside the access token. The payload is
// deliberately minimal: role and active status are re-read from the store on
// every request so deactivation takes effect immediately.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for the given user, valid for the manager's TTL (24h).
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify decodes and validates a token string. Expired tokens are reported as
// apperr.TokenExpired; every other failure (bad signature, wrong algorithm,
// malformed payload) is apperr.TokenInvalid.
func (m *Manager) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.Wrap(apperr.TokenExpired, "token expired", err)
		}

		return nil, apperr.Wrap(apperr.TokenInvalid, "invalid token", err)
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return nil, apperr.New(apperr.TokenInvalid, "invalid token")
	}

	if claims.UserID == "" {
		return nil, apperr.New(apperr.TokenInvalid, "invalid token")
	}

	return claims, nil
}
