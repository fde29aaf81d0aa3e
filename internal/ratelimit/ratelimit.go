// Package ratelimit limits writes per key with httprate over an injected counter.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/httprate"

	"github.com/vytor/lexiflash/internal/logger"
)

type windowKey struct {
	key   string
	start int64
}

// Counter is an httprate.LimitCounter held in process memory. httprate only
// reads the current and previous windows; Sweep drops anything older.
type Counter struct {
	mu     sync.Mutex
	window time.Duration
	counts map[windowKey]int
}

var _ httprate.LimitCounter = (*Counter)(nil)

func NewCounter() *Counter {
	return &Counter{window: time.Minute, counts: make(map[windowKey]int)}
}

// Config records the window length. httprate calls it once per limiter.
func (c *Counter) Config(_ int, window time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if window > 0 {
		c.window = window
	}
}

func (c *Counter) Increment(key string, currentWindow time.Time) error {
	return c.IncrementBy(key, currentWindow, 1)
}

func (c *Counter) IncrementBy(key string, currentWindow time.Time, amount int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[windowKey{key, currentWindow.UnixNano()}] += amount
	return nil
}

func (c *Counter) Get(key string, currentWindow, previousWindow time.Time) (int, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[windowKey{key, currentWindow.UnixNano()}], c.counts[windowKey{key, previousWindow.UnixNano()}], nil
}

// Sweep drops windows that ended before the previous one and returns how
// many counters went.
func (c *Counter) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := now.Truncate(c.window).Add(-c.window).UnixNano()
	removed := 0
	for k := range c.counts {
		if k.start < cutoff {
			delete(c.counts, k)
			removed++
		}
	}
	return removed
}

// Len reports the number of counters held, swept or not.
func (c *Counter) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.counts)
}

// failOpen lets requests through when the counter errors.
type failOpen struct {
	httprate.LimitCounter
	log *logger.Logger
}

func (f failOpen) Increment(key string, w time.Time) error {
	return f.IncrementBy(key, w, 1)
}

func (f failOpen) IncrementBy(key string, w time.Time, amount int) error {
	if err := f.LimitCounter.IncrementBy(key, w, amount); err != nil {
		f.log.Warn("counter write failed for %s: %v", key, err)
	}
	return nil
}

func (f failOpen) Get(key string, cur, prev time.Time) (int, int, error) {
	c, p, err := f.LimitCounter.Get(key, cur, prev)
	if err != nil {
		f.log.Warn("counter read failed, allowing %s: %v", key, err)
		return 0, 0, nil
	}
	return c, p, nil
}

// Limiter allows Limit requests per key per Window.
type Limiter struct {
	Counter httprate.LimitCounter
	Limit   int
	Window  time.Duration
}

// New builds a limiter over counter. A non-positive limit disables limiting.
func New(counter httprate.LimitCounter, limit int, window time.Duration) *Limiter {
	return &Limiter{Counter: counter, Limit: limit, Window: window}
}

// Handler returns middleware that limits requests by key and hands rejected
// ones to onLimited. A counter error lets the request through.
func (l *Limiter) Handler(key httprate.KeyFunc, onLimited http.HandlerFunc) func(http.Handler) http.Handler {
	if l == nil || l.Limit <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(l.Limit, l.Window,
		httprate.WithKeyFuncs(key),
		httprate.WithLimitCounter(failOpen{LimitCounter: l.Counter, log: logger.Default().WithPrefix("ratelimit")}),
		httprate.WithLimitHandler(onLimited),
	)
}
