package queue

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// DefaultInterval is the minimum spacing between provider calls.
const DefaultInterval = 100 * time.Millisecond

// Dispatcher serializes external provider calls: at most one request in
// flight, with a fixed minimum interval between starts. It replaces the
// ad-hoc module-level in-flight flag with a scheduling contract that
// can be tested in isolation.
type Dispatcher struct {
	limiter *rate.Limiter
	slot    chan struct{}
}

// NewDispatcher creates a capacity-1 dispatcher. A non-positive
// interval falls back to DefaultInterval.
func NewDispatcher(interval time.Duration) *Dispatcher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Dispatcher{
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		slot:    make(chan struct{}, 1),
	}
}

// Do runs fn once the single slot is free and the rate limiter allows
// another call. It returns the context error if the wait is cancelled,
// otherwise fn's error.
func (d *Dispatcher) Do(ctx context.Context, fn func(context.Context) error) error {
	select {
	case d.slot <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-d.slot }()

	if err := d.limiter.Wait(ctx); err != nil {
		return err
	}
	return fn(ctx)
}
