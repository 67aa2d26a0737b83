package ratelimit

import (
	"context"
	"sync"
	"time"
)

// TokenLimiter enforces a per-minute token budget using a sliding one-minute
// window. Unlike a plain rate.Limiter, admissions have a variable cost.
type TokenLimiter struct {
	mu        sync.Mutex
	maxTokens int
	used      int
	windowEnd time.Time
}

// NewTokenLimiter creates a limiter allowing maxTokensPerMinute tokens.
func NewTokenLimiter(maxTokensPerMinute int) *TokenLimiter {
	return &TokenLimiter{
		maxTokens: maxTokensPerMinute,
		windowEnd: time.Now().Add(time.Minute),
	}
}

// Wait blocks until the given number of tokens can be spent, or the context is
// canceled. Requests larger than the whole budget are admitted alone in a
// fresh window.
func (l *TokenLimiter) Wait(ctx context.Context, tokens int) error {
	for {
		l.mu.Lock()
		now := time.Now()
		if now.After(l.windowEnd) {
			l.used = 0
			l.windowEnd = now.Add(time.Minute)
		}
		if l.used+tokens <= l.maxTokens || l.used == 0 {
			l.used += tokens
			l.mu.Unlock()
			return nil
		}
		wait := time.Until(l.windowEnd)
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// GetRemaining returns the tokens left in the current window.
func (l *TokenLimiter) GetRemaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	if time.Now().After(l.windowEnd) {
		return l.maxTokens
	}
	remaining := l.maxTokens - l.used
	if remaining < 0 {
		return 0
	}
	return remaining
}
