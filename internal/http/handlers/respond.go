package handlers

import (
	"net/http"

	"github.com/devhire/talenthub/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

// APIError is the single error envelope every endpoint speaks.
type APIError struct {
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"requestId,omitempty"`
	Details   interface{} `json:"details,omitempty"`
}

func RespondError(ctx *gin.Context, status int, code, message string, details interface{}) {
	requestID := ctx.GetString(middlewares.CtxRequestID)

	if requestID == "" {
		requestID = ctx.GetHeader("X-Request-Id")
	}

	ctx.JSON(status, gin.H{
		"error": APIError{
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Details:   details,
		},
	})
}

// Shorthands for the handful of statuses the handlers actually return.

func RespondBadRequest(ctx *gin.Context, message string, details interface{}) {
	RespondError(ctx, http.StatusBadRequest, "invalid_request", message, details)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "not_found", message, nil)
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message, nil)
}

func RespondUnAuthorized(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusUnauthorized, code, message, nil)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusInternalServerError, "internal_error", message, nil)
}
