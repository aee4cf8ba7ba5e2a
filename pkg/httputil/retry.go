package httputil

import (
	"context"
	"errors"
	"time"
)

// Backoff is a retry schedule. The wait after a failed attempt starts at
// Delay and doubles, never exceeding MaxDelay when it is set.
type Backoff struct {
	Attempts int
	Delay    time.Duration
	MaxDelay time.Duration
}

type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// Transient marks err as worth another attempt.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &transientError{err: err}
}

// IsTransient reports whether err was marked with Transient.
func IsTransient(err error) bool {
	var t *transientError
	return errors.As(err, &t)
}

// Do runs fn until it succeeds, fails with an error not marked Transient,
// or runs out of attempts. The transient marker is stripped from the
// returned error. A cancelled ctx stops the wait and returns ctx.Err().
func (b Backoff) Do(ctx context.Context, fn func() error) error {
	wait := b.Delay
	for attempt := 1; ; attempt++ {
		err := fn()
		var t *transientError
		if err == nil || !errors.As(err, &t) {
			return err
		}
		if attempt >= b.Attempts {
			return t.err
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait *= 2
		if b.MaxDelay > 0 && wait > b.MaxDelay {
			wait = b.MaxDelay
		}
	}
}
