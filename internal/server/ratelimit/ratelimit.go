// Package ratelimit provides per-client rate limiting for the analysis API
// using a token bucket algorithm. Analysis runs are provider-bound and
// expensive, so the bucket is small and refills slowly.
package ratelimit

import (
	"sync"
	"time"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	Burst           int           // bucket capacity
	RefillPerMinute float64       // tokens added per minute
	CleanupInterval time.Duration // idle bucket eviction cadence
}

// DefaultConfig allows short bursts with a sustained rate of ten analysis
// runs per minute per client.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		Burst:           5,
		RefillPerMinute: 10,
		CleanupInterval: 5 * time.Minute,
	}
}

// bucket is a token bucket for one client.
type bucket struct {
	tokens     float64
	lastRefill time.Time
	lastAccess time.Time
}

// Limiter manages token buckets keyed by client ID (remote address).
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a limiter and starts its idle-bucket cleanup loop.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop()
	}
	return l
}

// Allow consumes one token for the client, reporting whether the request
// may proceed and how long to wait when it may not.
func (l *Limiter) Allow(clientID string) (allowed bool, retryAfter time.Duration) {
	if !l.config.Enabled {
		return true, 0
	}

	refillPerSecond := l.config.RefillPerMinute / 60

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	b, ok := l.buckets[clientID]
	if !ok {
		b = &bucket{tokens: float64(l.config.Burst), lastRefill: now}
		l.buckets[clientID] = b
	}

	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(float64(l.config.Burst), b.tokens+elapsed*refillPerSecond)
	b.lastRefill = now
	b.lastAccess = now

	if b.tokens >= 1 {
		b.tokens--
		return true, 0
	}

	needed := (1 - b.tokens) / refillPerSecond
	return false, time.Duration(needed * float64(time.Second))
}

// Stop terminates the cleanup loop.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * l.config.CleanupInterval)
			l.mu.Lock()
			for id, b := range l.buckets {
				if b.lastAccess.Before(cutoff) {
					delete(l.buckets, id)
				}
			}
			l.mu.Unlock()
		}
	}
}
