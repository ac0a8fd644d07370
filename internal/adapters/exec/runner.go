// Package exec provides executors for downloaded programs.
package exec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/openroberta/oraclient/internal/ports"
)

// launchFailed is the exit code reported when a program could not be started
// or was killed by the timeout.
const launchFailed = "-1"

// Noop accepts a program without running it and reports success.
type Noop struct{}

// Execute returns "0".
func (Noop) Execute(ctx context.Context, path string) (string, error) { return "0", nil }

// Runner launches programs with a fixed command line, appending the artifact
// path as the last argument (for example "python3 <path>").
type Runner struct {
	command []string
	timeout time.Duration
	logger  ports.Logger
}

// NewRunner creates a Runner. A zero timeout lets programs run until they exit.
func NewRunner(command []string, timeout time.Duration, logger ports.Logger) (*Runner, error) {
	if len(command) == 0 {
		return nil, errors.New("run command is empty")
	}
	return &Runner{command: command, timeout: timeout, logger: logger}, nil
}

// Execute runs the program and returns its exit code. A program that exits
// non-zero is not an error; failing to start it is.
func (r *Runner) Execute(ctx context.Context, path string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	args := append(append([]string{}, r.command[1:]...), path)
	cmd := exec.CommandContext(ctx, r.command[0], args...)
	cmd.WaitDelay = time.Second

	start := time.Now()
	out, err := cmd.CombinedOutput()
	duration := time.Since(start)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			r.logger.Warn("program timed out",
				ports.String("program", path),
				ports.Duration("duration", duration))
			return launchFailed, nil
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := strconv.Itoa(exitErr.ExitCode())
			r.logger.Info("program finished",
				ports.String("program", path),
				ports.String("exit_code", code),
				ports.Duration("duration", duration),
				ports.Int("output_bytes", len(out)))
			return code, nil
		}
		return launchFailed, fmt.Errorf("start %s: %w", r.command[0], err)
	}

	r.logger.Info("program finished",
		ports.String("program", path),
		ports.String("exit_code", "0"),
		ports.Duration("duration", duration),
		ports.Int("output_bytes", len(out)))
	return "0", nil
}
