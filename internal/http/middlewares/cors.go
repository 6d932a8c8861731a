package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsMethods = "GET, POST, PUT, DELETE, OPTIONS"
	corsHeaders = "Authorization, Content-Type, If-None-Match"
)

// CORSMiddleware reflects the Origin header back only for origins on the
// configured allow list. Preflights are answered here and never reach the
// handlers.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := false
	allowed := make(map[string]struct{}, len(allowedOrigins))

	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
			continue
		}

		allowed[strings.TrimRight(origin, "/")] = struct{}{}
	}

	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		if origin != "" {
			// response varies by origin even when we reject it
			ctx.Header("Vary", "Origin")

			_, ok := allowed[origin]

			if ok || allowAll {
				ctx.Header("Access-Control-Allow-Origin", origin)
				ctx.Header("Access-Control-Allow-Credentials", "true")
				ctx.Header("Access-Control-Allow-Methods", corsMethods)
				ctx.Header("Access-Control-Allow-Headers", corsHeaders)
				ctx.Header("Access-Control-Expose-Headers", "ETag, X-Request-Id, Retry-After")
			}
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}
