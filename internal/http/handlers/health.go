package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PingFunc reports whether an optional backend (Postgres, Redis) is reachable.
type PingFunc func() error

type HealthHandler struct {
	pings map[string]PingFunc
}

func NewHealthHandler(pings map[string]PingFunc) *HealthHandler {
	return &HealthHandler{pings: pings}
}

func (h *HealthHandler) Healthz(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz checks the optional backends. With no backends configured the
// in-memory setup is always ready.
func (h *HealthHandler) Readyz(ctx *gin.Context) {
	failures := gin.H{}

	for name, ping := range h.pings {
		if ping == nil {
			continue
		}

		if err := ping(); err != nil {
			failures[name] = err.Error()
		}
	}

	if len(failures) > 0 {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "degraded",
			"failures": failures,
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "ready"})
}
