package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:     3,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetryWithBackoff_EventualSuccess(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), "test op", func() error {
		attempts++
		if attempts < 3 {
			return errors.New("connection reset by peer")
		}
		return nil
	}, fastRetryConfig())

	assert.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_NonRetryable(t *testing.T) {
	attempts := 0
	err := RetryWithBackoff(context.Background(), "test op", func() error {
		attempts++
		return errors.New("AccessDenied")
	}, fastRetryConfig())

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	cfg := fastRetryConfig()
	attempts := 0
	err := RetryWithBackoff(context.Background(), "test op", func() error {
		attempts++
		return errors.New("request timeout")
	}, cfg)

	assert.Error(t, err)
	assert.Equal(t, cfg.MaxRetries+1, attempts)
}

func TestRetryWithBackoff_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, "test op", func() error {
		return errors.New("should not run")
	}, fastRetryConfig())

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryable(t *testing.T) {
	cfg := DefaultRetryConfig()

	assert.True(t, cfg.IsRetryable(errors.New("SlowDown")))
	assert.True(t, cfg.IsRetryable(errors.New("dial tcp: connection refused")))
	assert.True(t, cfg.IsRetryable(errors.New("request timeout")))

	assert.False(t, cfg.IsRetryable(nil))
	assert.False(t, cfg.IsRetryable(errors.New("NoSuchBucket")))
	assert.False(t, cfg.IsRetryable(context.Canceled))
}
