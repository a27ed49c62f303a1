package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	pkgerrors "github.com/pkg/errors"
)

type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retry calls fn up to attempts times, sleeping delay between calls. It stops
// early on success, on a Permanent error, or when ctx is done.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			slog.Info("Retrying request...", "attempt", i+1)
			select {
			case <-ctx.Done():
				return pkgerrors.Wrapf(ctx.Err(), "retry aborted after %d attempts, last error: %v", i, err)
			case <-time.After(delay):
			}
		}

		err = fn()
		if err == nil {
			return nil
		}

		var p *permanentError
		if errors.As(err, &p) {
			return p.err
		}
	}
	return pkgerrors.Wrapf(err, "after %d attempts", attempts)
}
