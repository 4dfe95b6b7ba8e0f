// Package latency simulates the response time of remote services that the
// storefront does not call yet (promo lookup, authentication).
package latency

import (
	"context"
	"time"
)

// Delay blocks for a simulated round trip or until ctx is done.
type Delay func(ctx context.Context) error

// Fixed waits d. The timer is released when ctx is cancelled first.
func Fixed(d time.Duration) Delay {
	if d <= 0 {
		return None
	}
	return func(ctx context.Context) error {
		t := time.NewTimer(d)
		defer t.Stop()
		select {
		case <-t.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// None returns immediately unless ctx is already done.
func None(ctx context.Context) error {
	return ctx.Err()
}
