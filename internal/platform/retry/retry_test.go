package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient failure")
var errPermanent = errors.New("permanent failure")

func classify(err error) Action {
	if errors.Is(err, errPermanent) {
		return Stop
	}
	return Transient
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	val, err := Do(context.Background(), Single(), classify, func() (int, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, val)
}

func TestDo_SingleAttemptReturnsErrorUnwrapped(t *testing.T) {
	_, err := Do(context.Background(), Single(), classify, func() (int, error) {
		return 0, errTransient
	})

	// No retrying, no wrapping: callers see the operation's error as-is.
	assert.Equal(t, errTransient, err)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	attempts := 0
	p := Policy{MaxAttempts: 5, InitialBackoff: time.Second, Clock: clockwork.NewFakeClock()}

	_, err := Do(context.Background(), p, classify, func() (int, error) {
		attempts++
		return 0, errPermanent
	})

	assert.Equal(t, 1, attempts)
	assert.Equal(t, errPermanent, err)
}

func TestDo_RetriesTransientWithBackoff(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := Policy{MaxAttempts: 3, InitialBackoff: time.Second, Clock: clock}

	attempts := 0
	type result struct {
		val int
		err error
	}
	done := make(chan result, 1)
	go func() {
		val, err := Do(context.Background(), p, classify, func() (int, error) {
			attempts++
			if attempts < 3 {
				return 0, errTransient
			}
			return 7, nil
		})
		done <- result{val, err}
	}()

	// First backoff: 1s, second: 2s (doubled).
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	clock.BlockUntil(1)
	clock.Advance(2 * time.Second)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, 7, res.val)
	assert.Equal(t, 3, attempts)
}

func TestDo_ExhaustionWrapsAttemptCount(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := Policy{MaxAttempts: 2, InitialBackoff: time.Second, Clock: clock}

	done := make(chan error, 1)
	go func() {
		_, err := Do(context.Background(), p, classify, func() (int, error) {
			return 0, errTransient
		})
		done <- err
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Second)

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, errTransient)
	assert.Contains(t, err.Error(), "after 2 attempts")
}

func TestDo_RateLimitedUsesLongerBackoff(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var waits []time.Duration
	p := Policy{
		MaxAttempts:      2,
		InitialBackoff:   time.Second,
		RateLimitBackoff: time.Minute,
		Clock:            clock,
		OnRetry: func(_ int, _ error, backoff time.Duration) {
			waits = append(waits, backoff)
		},
	}

	done := make(chan struct{})
	go func() {
		_, _ = Do(context.Background(), p, func(error) Action { return RateLimited }, func() (int, error) {
			return 0, errTransient
		})
		close(done)
	}()

	clock.BlockUntil(1)
	clock.Advance(time.Minute)
	<-done

	assert.Equal(t, []time.Duration{time.Minute}, waits)
}

func TestDo_ContextCancellationDuringBackoff(t *testing.T) {
	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithCancel(context.Background())
	p := Policy{MaxAttempts: 3, InitialBackoff: time.Hour, Clock: clock}

	done := make(chan error, 1)
	go func() {
		_, err := Do(ctx, p, classify, func() (int, error) {
			return 0, errTransient
		})
		done <- err
	}()

	clock.BlockUntil(1)
	cancel()

	err := <-done
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
