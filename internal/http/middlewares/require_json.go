package middlewares

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects mutating requests whose body is declared as anything
// other than JSON. GETs and bodyless requests pass through untouched.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		switch ctx.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			ctx.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(ctx.GetHeader("Content-Type"))

		if err != nil || mediaType != "application/json" {
			ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error": gin.H{
					"code":    "unsupported_media_type",
					"message": "Content-Type must be application/json",
				},
			})
			return
		}

		ctx.Next()
	}
}
