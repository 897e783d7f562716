// Package retry runs an operation under a per-attempt deadline and retries
// it with a fixed delay.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/logging"
)

// ErrTimeout is returned when an attempt does not finish within its deadline.
var ErrTimeout = errors.New("operation timed out")

// Options configures Do.
type Options struct {
	// Timeout bounds each attempt; zero disables the deadline.
	Timeout time.Duration

	// Retries is the number of additional attempts after the first failure.
	Retries int

	// Delay is the fixed pause between attempts.
	Delay time.Duration

	Logger *zap.Logger
}

type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

// Permanent marks err as not worth retrying.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Do calls fn until it succeeds, fails permanently, the parent context ends
// or the retries are exhausted, and returns the last result. An attempt that
// exceeds the timeout is abandoned: its context is canceled and its result
// discarded.
func Do[T any](ctx context.Context, opts Options, fn func(context.Context) (T, error)) (T, error) {
	logger := logging.OrNop(opts.Logger)

	var zero T
	var lastErr error
	for attempt := 0; attempt <= opts.Retries; attempt++ {
		if attempt > 0 {
			logger.Warn("Retrying",
				zap.Int("attempt", attempt+1),
				zap.Int("maxAttempts", opts.Retries+1),
				zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(opts.Delay):
			}
		}

		result, err := runAttempt(ctx, opts.Timeout, fn)
		if err == nil {
			return result, nil
		}
		lastErr = err

		var perm *permanentError
		if errors.As(err, &perm) {
			return zero, perm.err
		}
		if ctx.Err() != nil {
			return zero, err
		}
	}

	if opts.Retries > 0 {
		return zero, fmt.Errorf("failed after %d attempts: %w", opts.Retries+1, lastErr)
	}
	return zero, lastErr
}

type outcome[T any] struct {
	value T
	err   error
}

func runAttempt[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if timeout <= 0 {
		return fn(ctx)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan outcome[T], 1)
	go func() {
		v, err := fn(attemptCtx)
		done <- outcome[T]{value: v, err: err}
	}()

	select {
	case o := <-done:
		return o.value, o.err
	case <-attemptCtx.Done():
		var zero T
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}
		return zero, fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}
