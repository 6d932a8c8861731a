package middlewares

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

// RequestID honours an inbound id when the caller supplies one, otherwise
// mints a fresh uuid. The id rides on the response header and the gin context.
func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)

		ctx.Next()
	}
}

// RequestLogger emits one structured line per request after the handler chain
// finishes.
func RequestLogger() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path // unmatched routes have no template
		}

		ctx.Next()

		requestID := ctx.GetString(CtxRequestID)

		slog.Default().InfoContext(ctx.Request.Context(), "http_request",
			"method", ctx.Request.Method,
			"route", route,
			"status", ctx.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", ctx.ClientIP(),
			"request_id", requestID,
		)
	}
}
