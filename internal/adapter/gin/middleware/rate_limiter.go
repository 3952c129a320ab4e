package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"user-table-service/internal/adapter/ratelimit"
)

// RateLimiter returns a Gin middleware applying a token bucket per method, route and client IP.
func RateLimiter(limiter *ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !limiter.Config().Enabled {
			c.Next()
			return
		}

		// Route template keeps /users/:id in one bucket regardless of the id
		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		key := fmt.Sprintf("%s:%s:%s", c.Request.Method, route, c.ClientIP())

		if !limiter.Allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":   "rate_limit_exceeded",
				"message": limiter.Message(),
			})
			return
		}

		c.Next()
	}
}
