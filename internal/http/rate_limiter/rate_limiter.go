package rate_limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Visitors hands out one token bucket per client key.
type Visitors struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*clientLimiter
	now      func() time.Time
}

func NewVisitors(rps float64, burst int) *Visitors {
	return &Visitors{
		rps:      rate.Limit(rps),
		burst:    burst,
		visitors: make(map[string]*clientLimiter),
		now:      time.Now,
	}
}

func (v *Visitors) GetVisitor(key string) *rate.Limiter {
	v.mu.Lock()
	defer v.mu.Unlock()

	c, exists := v.visitors[key]
	if !exists {
		limiter := rate.NewLimiter(v.rps, v.burst)
		v.visitors[key] = &clientLimiter{limiter, v.now()}
		return limiter
	}

	c.lastSeen = v.now()
	return c.limiter
}

// Allow takes one token from the bucket of key.
func (v *Visitors) Allow(key string) bool {
	return v.GetVisitor(key).Allow()
}

// StartVisitorCleanupLoop drops clients idle for longer than idle, checking
// every interval until ctx is done.
func (v *Visitors) StartVisitorCleanupLoop(ctx context.Context, interval, idle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			v.evictIdle(idle)
		}
	}
}

func (v *Visitors) evictIdle(idle time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for key, c := range v.visitors {
		if v.now().Sub(c.lastSeen) > idle {
			delete(v.visitors, key)
		}
	}
}

func (v *Visitors) CleanupAllVisitors() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.visitors = make(map[string]*clientLimiter)
}

func (v *Visitors) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.visitors)
}
