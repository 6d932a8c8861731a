package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/devhire/talenthub/internal/security"
	"github.com/gin-gonic/gin"
)

type TokenIssuer interface {
	GenerateAccessToken(email, role string) (string, error)
}

type AuthHandler struct {
	jwt        TokenIssuer
	adminEmail string
	adminHash  string
	tokenTTL   time.Duration
}

func NewAuthHandler(jwt TokenIssuer, adminEmail, adminHash string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		jwt:        jwt,
		adminEmail: strings.ToLower(adminEmail),
		adminHash:  adminHash,
		tokenTTL:   tokenTTL,
	}
}

type tokenRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=128"`
}

// Token exchanges the configured admin credentials for a short-lived access
// token. There is deliberately no user store behind this.
func (h *AuthHandler) Token(ctx *gin.Context) {
	if h.adminHash == "" {
		RespondError(ctx, http.StatusServiceUnavailable, "auth_disabled", "Admin credentials are not configured", nil)
		return
	}

	var req tokenRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// same response for unknown email and wrong password
	if strings.ToLower(strings.TrimSpace(req.Email)) != h.adminEmail ||
		security.CheckPassword(h.adminHash, req.Password) != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Email or password is incorrect")
		return
	}

	token, err := h.jwt.GenerateAccessToken(h.adminEmail, "admin")

	if err != nil {
		RespondInternal(ctx, "Could not issue token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"accessToken": token,
		"tokenType":   "Bearer",
		"expiresIn":   int(h.tokenTTL.Seconds()),
	})
}
