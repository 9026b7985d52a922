package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware allows the admin UI origins. Entries may carry a single
// leading wildcard ("https://*.vercel.app") to cover preview deployments.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	exact := make(map[string]struct{}, len(allowedOrigins))
	var suffixes []string

	for _, origin := range allowedOrigins {
		if scheme, rest, ok := strings.Cut(origin, "://"); ok && strings.HasPrefix(rest, "*.") {
			suffixes = append(suffixes, scheme+"://", strings.TrimPrefix(rest, "*"))
			continue
		}

		exact[origin] = struct{}{}
	}

	allowed := func(origin string) bool {
		if _, ok := exact[origin]; ok {
			return true
		}

		for i := 0; i+1 < len(suffixes); i += 2 {
			if strings.HasPrefix(origin, suffixes[i]) && strings.HasSuffix(origin, suffixes[i+1]) {
				return true
			}
		}

		return false
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		if origin != "" && allowed(origin) {
			ctx.Header("Access-Control-Allow-Origin", origin)
			ctx.Header("Access-Control-Allow-Credentials", "true")
			ctx.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
			ctx.Header("Access-Control-Allow-Headers", "Authorization,Content-Type")
			ctx.Header("Vary", "Origin")
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
