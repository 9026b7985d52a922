package middlewares

import (
	"net/http"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gestionrodar/filmoteca/internal/domain/user"
	"github.com/gin-gonic/gin"
)

// Authorize is the whole role gate: allowed set and resolved role in, decision
// out. Keeping it a pure function makes the policy trivially testable.
func Authorize(allowed []user.Role, role user.Role) error {
	for _, r := range allowed {
		if r == role {
			return nil
		}
	}

	return apperr.New(apperr.Forbidden, "insufficient permissions")
}

// RequireRoles adapts Authorize to gin. It expects RequireAuth to have run
// already; a missing identity context here means a wiring bug and is treated
// as unauthenticated.
func RequireRoles(allowed ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := CurrentUser(c)

		if !ok {
			abortUnauthorized(c, "user not authenticated")
			return
		}

		if err := Authorize(allowed, u.Role); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

// The two canonical gates.

func RequireAdmin() gin.HandlerFunc {
	return RequireRoles(user.RoleAdmin)
}

func RequireEditor() gin.HandlerFunc {
	return RequireRoles(user.RoleAdmin, user.RoleEditor)
}
