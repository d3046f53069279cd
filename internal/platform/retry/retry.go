// Package retry provides a generic bounded-retry helper with error
// classification and exponential backoff.
package retry

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

// Action tells Do how to treat a failed attempt.
type Action int

const (
	// Stop marks a permanent error; Do aborts immediately.
	Stop Action = iota
	// Transient marks a retryable error; Do waits the normal backoff.
	Transient
	// RateLimited marks a throttled call; Do waits the longer backoff.
	RateLimited
)

// Classify maps an error to an Action.
type Classify func(err error) Action

// Policy controls attempt count and backoff. A MaxAttempts of 1 disables
// retrying entirely and returns the operation's error untouched.
type Policy struct {
	MaxAttempts      int
	InitialBackoff   time.Duration
	RateLimitBackoff time.Duration
	Clock            clockwork.Clock
	OnRetry          func(attempt int, err error, backoff time.Duration)
}

// Single is the no-retry policy: one attempt, errors pass through.
func Single() Policy {
	return Policy{MaxAttempts: 1}
}

// Do runs op up to p.MaxAttempts times, doubling the backoff between
// transient failures. The first attempt's error is returned unwrapped when
// retrying is disabled or the error is permanent.
func Do[T any](ctx context.Context, p Policy, classify Classify, op func() (T, error)) (T, error) {
	var zero T

	clock := p.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	backoff := p.InitialBackoff
	for attempt := 1; ; attempt++ {
		val, err := op()
		if err == nil {
			return val, nil
		}

		action := classify(err)
		if action == Stop || attempt >= p.MaxAttempts {
			if attempt > 1 {
				return zero, fmt.Errorf("giving up after %d attempts: %w", attempt, err)
			}
			return zero, err
		}

		wait := backoff
		if action == RateLimited {
			wait = p.RateLimitBackoff
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}

		select {
		case <-clock.After(wait):
			backoff *= 2
		case <-ctx.Done():
			return zero, fmt.Errorf("retry interrupted: %w", ctx.Err())
		}
	}
}
