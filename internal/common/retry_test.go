package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOpts(attempts int) RetryOptions {
	return RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetrySucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return nil
	}, fastOpts(3))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryRecoversAfterFailures(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		if calls < 3 {
			return &RetryableError{Err: errors.New("transient"), Retryable: true}
		}
		return nil
	}, fastOpts(5))

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWithRetryStopsOnNonRetryable(t *testing.T) {
	calls := 0
	permanent := &RetryableError{Err: errors.New("bad request"), Retryable: false}
	err := WithRetry(context.Background(), func() error {
		calls++
		return permanent
	}, fastOpts(5))

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), func() error {
		calls++
		return errors.New("always fails")
	}, fastOpts(3))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetries)
	assert.Equal(t, 3, calls)
}

func TestWithRetryHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := WithRetry(ctx, func() error {
		calls++
		cancel()
		return errors.New("fails")
	}, RetryOptions{MaxAttempts: 5, InitialDelay: time.Hour})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryableErrorUnwrap(t *testing.T) {
	inner := errors.New("socket closed")
	wrapped := &RetryableError{Err: inner, Retryable: true}
	assert.ErrorIs(t, wrapped, inner)
	assert.Equal(t, "socket closed", wrapped.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}
