package ratelimiter

import (
	"sync"
	"time"
)

// bucket is a token bucket for one identity
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// UserRateLimiter keeps one token bucket per identity (IP, user id, ...).
// Idle buckets are dropped after expirationTime.
type UserRateLimiter struct {
	mu             sync.Mutex
	buckets        map[string]*bucket
	rate           float64 // tokens per second
	capacity       float64
	expirationTime time.Duration
	lastSweep      time.Time
	now            func() time.Time
}

func New(rate float64, capacity float64, expirationTime time.Duration) *UserRateLimiter {
	return &UserRateLimiter{
		buckets:        make(map[string]*bucket),
		rate:           rate,
		capacity:       capacity,
		expirationTime: expirationTime,
		now:            time.Now,
	}
}

// Allow checks if a request should be allowed for a given identity
func (l *UserRateLimiter) Allow(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	b, ok := l.buckets[identity]
	if !ok {
		b = &bucket{tokens: l.capacity, lastSeen: now}
		l.buckets[identity] = b
	}

	// Refill tokens based on elapsed time
	b.tokens += now.Sub(b.lastSeen).Seconds() * l.rate
	if b.tokens > l.capacity {
		b.tokens = l.capacity
	}
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// Len returns the number of tracked identities.
func (l *UserRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// sweep drops idle buckets at most once per expirationTime. Caller holds mu.
func (l *UserRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.expirationTime {
		return
	}
	for identity, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.expirationTime {
			delete(l.buckets, identity)
		}
	}
	l.lastSweep = now
}
