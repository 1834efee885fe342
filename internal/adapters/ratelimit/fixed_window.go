package ratelimit

import (
	"sync"
	"time"

	goCache "github.com/patrickmn/go-cache"

	"eventbooking/internal/domain"
)

// DefaultCleanupInterval is how often expired windows are swept from memory.
const DefaultCleanupInterval = 10 * time.Minute

type window struct {
	count     int
	resetTime time.Time
}

// FixedWindow is an in-process fixed-window counter keyed by client.
// Each instance holds its own table; separate processes do not share counts.
type FixedWindow struct {
	mu      sync.Mutex
	windows *goCache.Cache
	now     func() time.Time
}

// Option configures a FixedWindow.
type Option func(*FixedWindow)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *FixedWindow) { l.now = now }
}

// NewFixedWindow returns a limiter whose expired windows are evicted every cleanupInterval.
func NewFixedWindow(cleanupInterval time.Duration, opts ...Option) *FixedWindow {
	l := &FixedWindow{
		windows: goCache.New(goCache.NoExpiration, cleanupInterval),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ domain.RateLimiter = (*FixedWindow)(nil)

// Allow admits the attempt for key when fewer than maxRequests attempts were admitted
// in the current window. A missing or elapsed window restarts at count 1. Denied
// attempts are not counted.
func (l *FixedWindow) Allow(key string, maxRequests int, windowLen time.Duration) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if v, ok := l.windows.Get(key); ok {
		w := v.(*window)
		if !now.After(w.resetTime) {
			if w.count >= maxRequests {
				return false
			}
			w.count++
			return true
		}
	}
	l.windows.Set(key, &window{count: 1, resetTime: now.Add(windowLen)}, windowLen)
	return true
}

// RetryAfter returns how long until key's current window resets, or 0 if it has no window.
func (l *FixedWindow) RetryAfter(key string) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.windows.Get(key)
	if !ok {
		return 0
	}
	d := v.(*window).resetTime.Sub(l.now())
	if d < 0 {
		return 0
	}
	return d
}
