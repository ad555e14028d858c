package middleware

import (
	"crypto/subtle"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cheapram/cheapram-api/internal/utils"
)

// RefreshAuthMiddleware guards the refresh trigger with a bearer secret.
// When no secret is configured the endpoint is open, which is the expected
// state in local development.
type RefreshAuthMiddleware struct {
	secret      string
	rateLimiter *SecretRateLimiter
}

// NewRefreshAuthMiddleware constructs a RefreshAuthMiddleware.
func NewRefreshAuthMiddleware(secret string) *RefreshAuthMiddleware {
	return &RefreshAuthMiddleware{
		secret:      secret,
		rateLimiter: NewSecretRateLimiter(5, time.Minute),
	}
}

// Handle returns a Gin middleware function that enforces the bearer secret.
func (m *RefreshAuthMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.secret == "" {
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		expected := "Bearer " + m.secret
		if subtle.ConstantTimeCompare([]byte(auth), []byte(expected)) != 1 {
			if !m.rateLimiter.Allow(c.ClientIP()) {
				utils.Error(c, 429, "TOO_MANY_REQUESTS", "Too many invalid refresh attempts")
				c.Abort()
				return
			}
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid or missing refresh secret")
			c.Abort()
			return
		}

		c.Next()
	}
}
