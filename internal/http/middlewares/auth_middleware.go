package middlewares

import (
	"context"
	"net/http"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gestionrodar/filmoteca/internal/auth"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// tokenCookieName is the session cookie set by login and cleared by logout.
const tokenCookieName = "token"

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// UserResolver returns the hash-free projection of a user.
type UserResolver interface {
	GetByID(ctx context.Context, id string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserResolver
}

func NewAuthMiddleware(jwt TokenVerifier, users UserResolver) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt, users: users}
}

// RequireAuth resolves the caller's identity or rejects with 401 before any
// handler logic runs. The token is read from the `token` cookie first, then
// from the Authorization header; a verified token must still map to an
// existing, active user.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c)

		if raw == "" {
			abortUnauthorized(c, "access token required")
			return
		}

		claims, err := m.jwt.Verify(raw)

		if err != nil {
			if apperr.IsKind(err, apperr.TokenExpired) {
				abortUnauthorized(c, "token expired")
				return
			}

			abortUnauthorized(c, "invalid token")
			return
		}

		u, err := m.users.GetByID(c.Request.Context(), claims.UserID)

		if err != nil || !u.IsActive {
			// deactivation invalidates outstanding tokens on the next request
			abortUnauthorized(c, "invalid or inactive user")
			return
		}

		c.Set(ctxUserKey, u)

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(tokenCookieName); err == nil && cookie != "" {
		return cookie
	}

	header := c.GetHeader("Authorization")

	const prefix = "Bearer "

	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):]
	}

	return ""
}

// CurrentUser returns the identity resolved by RequireAuth.
func CurrentUser(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return user.User{}, false
	}

	u, ok := v.(user.User)
	return u, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"message": message,
	})
}
