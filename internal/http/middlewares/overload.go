package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// OverloadGuard sits in front of the per-client limiter and sheds load once
// the whole process exceeds rps/burst, regardless of who is sending.
type OverloadGuard struct {
	lim      *rate.Limiter
	OnDenied func()
}

func NewOverloadGuard(rps float64, burst int) *OverloadGuard {
	return &OverloadGuard{
		lim: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (g *OverloadGuard) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !g.lim.Allow() {
			if g.OnDenied != nil {
				g.OnDenied()
			}

			c.Header("Retry-After", "1")

			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": gin.H{
					"code":    "server_busy",
					"message": "Server is handling too many requests right now.",
				},
			})

			return
		}

		c.Next()
	}
}
