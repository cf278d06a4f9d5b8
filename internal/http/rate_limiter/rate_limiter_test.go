package rate_limiter

import (
	"testing"
	"time"
)

func TestVisitors_BurstThenReject(t *testing.T) {
	v := NewVisitors(1, 3)

	for i := range 3 {
		if !v.Allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed within the burst", i+1)
		}
	}
	if v.Allow("10.0.0.1") {
		t.Fatal("expected the fourth request to be rejected")
	}
	if !v.Allow("10.0.0.2") {
		t.Fatal("other clients have their own bucket")
	}
}

func TestVisitors_EvictIdle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	v := NewVisitors(1, 1)
	v.now = func() time.Time { return now }

	v.GetVisitor("old")
	now = now.Add(10 * time.Minute)
	v.GetVisitor("fresh")

	v.evictIdle(5 * time.Minute)

	if got := v.Len(); got != 1 {
		t.Fatalf("expected 1 visitor after eviction, got %d", got)
	}

	v.CleanupAllVisitors()
	if got := v.Len(); got != 0 {
		t.Fatalf("expected no visitors, got %d", got)
	}
}
