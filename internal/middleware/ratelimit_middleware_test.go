package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecretRateLimiterBlocksAfterLimit(t *testing.T) {
	rl := NewSecretRateLimiter(3, time.Minute)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	// Other IPs keep their own budget.
	assert.True(t, rl.Allow("5.6.7.8"))
}

func TestSecretRateLimiterWindowExpiry(t *testing.T) {
	rl := NewSecretRateLimiter(1, 10*time.Millisecond)

	assert.True(t, rl.Allow("1.2.3.4"))
	assert.False(t, rl.Allow("1.2.3.4"))

	time.Sleep(20 * time.Millisecond)
	assert.True(t, rl.Allow("1.2.3.4"))
}
