package util

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter caps how often the watcher may trigger a rescan.
type Limiter struct {
	inner *rate.Limiter
}

// NewRescanLimiter allows perMinute rescans with a burst of one.
func NewRescanLimiter(perMinute float64) *Limiter {
	return &Limiter{
		inner: rate.NewLimiter(rate.Limit(perMinute/60.0), 1),
	}
}

// Allow reports whether a rescan may start now.
func (l *Limiter) Allow() bool {
	return l.inner.AllowN(time.Now(), 1)
}

// Wait blocks until a rescan slot is available.
func (l *Limiter) Wait(ctx context.Context) error {
	return l.inner.WaitN(ctx, 1)
}
