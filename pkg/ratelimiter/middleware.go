package ratelimiter

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// LimitedHandler writes the response for a request that exceeded its limit.
// limit is the configured requests per minute.
type LimitedHandler func(c *gin.Context, limit int)

// Middleware creates a Gin middleware for rate limiting. Rejected requests
// are handed to onLimited and aborted.
func (rl *RateLimiter) Middleware(onLimited LimitedHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		allowed, retryAfter := rl.Allow(clientIP)

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.perMin))

		if !allowed {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))

			onLimited(c, rl.perMin)
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(rl.Remaining(clientIP)))
		c.Next()
	}
}
