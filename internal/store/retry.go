package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig configures a Retrying sink.
type RetryConfig struct {
	Attempts uint          // default: 3
	Delay    time.Duration // default: 100ms
	Logger   *slog.Logger
}

// Retrying retries failed writes of the wrapped sink. Invalid records,
// a closed sink and partial writes are not retried.
type Retrying[T any] struct {
	inner    Sink[T]
	attempts uint
	delay    time.Duration
	logger   *slog.Logger
}

// NewRetrying wraps inner.
func NewRetrying[T any](inner Sink[T], cfg RetryConfig) *Retrying[T] {
	if cfg.Attempts == 0 {
		cfg.Attempts = 3
	}
	if cfg.Delay <= 0 {
		cfg.Delay = 100 * time.Millisecond
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Retrying[T]{inner: inner, attempts: cfg.Attempts, delay: cfg.Delay, logger: cfg.Logger}
}

// Put implements Sink.
func (r *Retrying[T]) Put(ctx context.Context, v T) error {
	return retry.Do(
		func() error {
			return r.inner.Put(ctx, v)
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, ErrInvalidRecord) && !errors.Is(err, ErrClosed) && !errors.Is(err, ErrPartialWrite)
		}),
		retry.OnRetry(func(n uint, err error) {
			r.logger.Warn("store write failed, retrying", "attempt", n+1, "error", err)
		}),
	)
}

// Close implements Sink.
func (r *Retrying[T]) Close() error {
	return r.inner.Close()
}
