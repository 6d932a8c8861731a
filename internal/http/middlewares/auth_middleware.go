package middlewares

import (
	"net/http"
	"strings"

	"github.com/devhire/talenthub/internal/auth"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	jwt TokenVerifier
}

func NewAuthMiddleware(jwt TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))

		if !ok {
			abortUnauthorized(c, "Missing or invalid Authorization header")
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)

		if err != nil {
			abortUnauthorized(c, "Invalid or expired access token")
			return
		}

		c.Set(ctxEmailKey, claims.Email)
		c.Set(ctxRoleKey, claims.Role)

		c.Next()
	}
}

// RequireRole layers on top of RequireAuth; without an identity on the context
// it answers 401 rather than 403.
func (m *AuthMiddleware) RequireRole(required string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			abortUnauthorized(c, "Missing identity context")
			return
		}

		if role != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Insufficient role for this operation",
				},
			})
			return
		}

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "

	if !strings.HasPrefix(header, prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])

	return token, token != ""
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": message,
		},
	})
}

// Helpers so handlers never touch the raw context keys.

func EmailFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxEmailKey)

	if !ok {
		return "", false
	}

	email, ok := v.(string)

	return email, ok
}

func RoleFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxRoleKey)

	if !ok {
		return "", false
	}

	role, ok := v.(string)

	return role, ok
}
