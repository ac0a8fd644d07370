package ports

import (
	"context"
	"time"
)

// Executor runs a downloaded program.
type Executor interface {
	// Execute runs the artifact at path and returns its exit code as a string.
	Execute(ctx context.Context, path string) (string, error)
}

// Sleeper waits between retries.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in that case.
	Sleep(ctx context.Context, d time.Duration) error
}

// BatteryGauge reports the battery level included in every envelope.
type BatteryGauge interface {
	Level() int
}
