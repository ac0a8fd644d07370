package app

import (
	"context"
	"time"
)

// DefaultRetryInterval is the fixed wait after a failed exchange.
const DefaultRetryInterval = 10 * time.Second

// TimerSleeper implements ports.Sleeper with a timer.
type TimerSleeper struct{}

// Sleep waits for d or until ctx is done.
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
