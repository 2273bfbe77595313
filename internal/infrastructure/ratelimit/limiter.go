// Package ratelimit wraps golang.org/x/time/rate with the small surface the
// provider layer needs: block until a request slot is free, probe without
// blocking, and reset accumulated tokens.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket rate limiter. The bucket fills at the configured
// rate up to burst tokens; Acquire removes one token, waiting for a refill
// when the bucket is empty. Safe for concurrent use.
type Limiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	limit   rate.Limit
	burst   int
}

// New creates a limiter allowing maxCalls requests per period. The bucket
// starts full with burst capacity equal to maxCalls, so a quiet client can
// issue a short burst before throttling kicks in.
func New(maxCalls int, period time.Duration) *Limiter {
	if maxCalls < 1 {
		maxCalls = 1
	}
	if period <= 0 {
		period = time.Second
	}
	limit := rate.Every(period / time.Duration(maxCalls))
	return &Limiter{
		limiter: rate.NewLimiter(limit, maxCalls),
		limit:   limit,
		burst:   maxCalls,
	}
}

// PerSecond creates a limiter allowing n requests per second.
func PerSecond(n int) *Limiter {
	return New(n, time.Second)
}

// Acquire blocks until a token is available or ctx is done. It returns the
// ctx error when cancelled while waiting.
func (l *Limiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	limiter := l.limiter
	l.mu.Unlock()
	return limiter.Wait(ctx)
}

// TryAcquire takes a token if one is available without blocking.
func (l *Limiter) TryAcquire() bool {
	l.mu.Lock()
	limiter := l.limiter
	l.mu.Unlock()
	return limiter.Allow()
}

// Reset refills the bucket to full capacity by swapping in a fresh limiter.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.limiter = rate.NewLimiter(l.limit, l.burst)
}

// Burst returns the bucket capacity.
func (l *Limiter) Burst() int { return l.burst }
