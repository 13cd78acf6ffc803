package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/dgallion1/cragmap/internal/extract"
)

// ErrExhausted marks a call whose retryable failures used up the attempt budget.
var ErrExhausted = errors.New("retry budget exhausted")

// Policy describes how a single call site retries.
type Policy struct {
	MaxAttempts int
	// Backoff returns the wait after the n-th failed attempt (1-based).
	Backoff func(failures int) time.Duration
	// Retryable decides whether an error may be retried.
	Retryable func(error) bool
	// Sleep waits for d or until ctx is done. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// LinearBackoff waits failures*step: step, 2*step, 3*step...
func LinearBackoff(step time.Duration) func(int) time.Duration {
	return func(failures int) time.Duration {
		return time.Duration(failures) * step
	}
}

// DownloadPolicy is the SVG download policy: linear backoff, transient errors only.
func DownloadPolicy(maxAttempts int, step time.Duration) Policy {
	return Policy{
		MaxAttempts: maxAttempts,
		Backoff:     LinearBackoff(step),
		Retryable:   extract.IsTransient,
	}
}

// Do calls fn until it succeeds, fails with a non-retryable error, or runs
// out of attempts. It returns the number of attempts made. When the budget
// runs out the error wraps both ErrExhausted and the last failure.
// onRetry, if set, is called before each wait.
func (p Policy) Do(ctx context.Context, fn func(ctx context.Context) error, onRetry func(failures int, wait time.Duration, err error)) (int, error) {
	maxAttempts := p.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}

	attempts := 0
	for {
		attempts++
		err := fn(ctx)
		if err == nil {
			return attempts, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return attempts, ctxErr
		}
		if p.Retryable == nil || !p.Retryable(err) {
			return attempts, err
		}
		if attempts >= maxAttempts {
			return attempts, errors.Join(ErrExhausted, err)
		}

		var wait time.Duration
		if p.Backoff != nil {
			wait = p.Backoff(attempts)
		}
		if onRetry != nil {
			onRetry(attempts, wait, err)
		}
		if err := sleep(ctx, wait); err != nil {
			return attempts, err
		}
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
