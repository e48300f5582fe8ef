// Package clock provides the waiting primitives used by retry loops and pollers.
package clock

import (
	"context"
	"time"
)

// SleepWithContext waits for d or until ctx is done, whichever comes first.
// A non-positive d only reports whether ctx is already done.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
