package layout

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle is a leading-edge limiter: the first call in a window passes, the
// rest of the window is dropped. Dropped calls are not queued.
type Throttle struct {
	limiter  *rate.Limiter
	interval time.Duration
	now      func() time.Time
}

// NewThrottle returns a throttle that admits one call per interval. An
// interval <= 0 admits every call. now defaults to time.Now.
func NewThrottle(interval time.Duration, now func() time.Time) *Throttle {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	if now == nil {
		now = time.Now
	}
	return &Throttle{
		limiter:  rate.NewLimiter(limit, 1),
		interval: interval,
		now:      now,
	}
}

// Allow reports whether a call may proceed now.
func (t *Throttle) Allow() bool {
	return t.limiter.AllowN(t.now(), 1)
}

// Interval returns the configured window.
func (t *Throttle) Interval() time.Duration {
	return t.interval
}
