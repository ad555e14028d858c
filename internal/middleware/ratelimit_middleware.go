package middleware

import (
	"sync"
	"time"
)

// SecretRateLimiter throttles invalid refresh-secret attempts per client IP.
// Valid requests are never limited.
type SecretRateLimiter struct {
	mu       sync.Mutex
	attempts map[string]*attemptInfo
	limit    int
	window   time.Duration
}

type attemptInfo struct {
	count   int
	firstAt time.Time
}

// NewSecretRateLimiter constructs a limiter allowing `limit` failed attempts
// per `window` for each IP.
func NewSecretRateLimiter(limit int, window time.Duration) *SecretRateLimiter {
	rl := &SecretRateLimiter{
		attempts: make(map[string]*attemptInfo),
		limit:    limit,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// Allow records a failed attempt for the IP and reports whether it is still
// within the limit.
func (r *SecretRateLimiter) Allow(ip string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	info, exists := r.attempts[ip]
	if !exists || now.Sub(info.firstAt) > r.window {
		r.attempts[ip] = &attemptInfo{count: 1, firstAt: now}
		return true
	}

	if info.count >= r.limit {
		return false
	}
	info.count++
	return true
}

func (r *SecretRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	for range ticker.C {
		r.mu.Lock()
		now := time.Now()
		for ip, info := range r.attempts {
			if now.Sub(info.firstAt) > r.window {
				delete(r.attempts, ip)
			}
		}
		r.mu.Unlock()
	}
}
