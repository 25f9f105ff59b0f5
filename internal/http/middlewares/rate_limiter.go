package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	apperrors "pet-sitter.com/pet-sitter/internal/errors"
)

var ErrRateLimited = apperrors.New(429, "rate limit exceeded")

// RateLimiter allows limit requests per window for each caller. Authenticated
// callers are keyed by user id, anonymous ones by client IP.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	type bucket struct {
		count int
		start time.Time
	}

	var (
		mu        sync.Mutex
		buckets   = make(map[string]*bucket)
		lastSweep = time.Now()
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := "ip:" + c.RealIP()
			if actor := ActorID(c); actor != "" {
				key = "user:" + actor
			}

			mu.Lock()
			if now.Sub(lastSweep) > window {
				for k, b := range buckets {
					if now.Sub(b.start) > window {
						delete(buckets, k)
					}
				}
				lastSweep = now
			}

			b, ok := buckets[key]
			if !ok || now.Sub(b.start) > window {
				b = &bucket{start: now}
				buckets[key] = b
			}

			if b.count >= limit {
				mu.Unlock()
				return ErrRateLimited
			}

			b.count++
			mu.Unlock()

			return next(c)
		}
	}
}
