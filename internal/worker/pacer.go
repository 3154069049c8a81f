package worker

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer spaces out calls to an external backend with a fixed inter-call
// interval. It is a quota-respecting delay, not a back-off: a failed call is
// not retried and does not change the pacing.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer that admits one call per interval. A zero or
// negative interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	if interval <= 0 {
		return &Pacer{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &Pacer{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call may proceed or the context is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
