package util

import (
	"context"
	"testing"
	"time"
)

func TestLimiterBurstOfOne(t *testing.T) {
	l := NewRescanLimiter(60) // one per second

	if !l.Allow() {
		t.Fatal("first rescan must be allowed")
	}
	if l.Allow() {
		t.Error("second immediate rescan must be limited")
	}
}

func TestLimiterWaitHonorsContext(t *testing.T) {
	l := NewRescanLimiter(0.001)
	l.Allow() // drain the burst

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("wait must fail when the context expires first")
	}
}
