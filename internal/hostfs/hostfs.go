package hostfs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
)

// DefaultReadTimeout bounds a single host file read when the caller passes no timeout.
const DefaultReadTimeout = 5 * time.Second

// ErrReadTimeout is returned when a read does not complete within its timeout.
var ErrReadTimeout = errors.New("host file read timed out")

type readResult struct {
	data []byte
	err  error
}

// ReadFile reads path, giving up after timeout or when ctx is done.
// The underlying read keeps running in the background until the kernel returns.
func ReadFile(ctx context.Context, path string, timeout time.Duration) ([]byte, error) {
	if timeout <= 0 {
		timeout = DefaultReadTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan readResult, 1)

	go func() {
		b, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
		done <- readResult{data: b, err: err}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return nil, fmt.Errorf("read %s: %w", path, res.err)
		}

		return res.data, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s after %s", ErrReadTimeout, path, timeout)
		}

		return nil, fmt.Errorf("read %s: %w", path, ctx.Err())
	}
}
