// Package retry wraps calls into host collaborators (data snapshots, query
// previews) with exponential backoff.
//
// Usage:
//
//	err := retry.Do(ctx, retry.Config{MaxAttempts: 3}, func() error {
//	    v, err = previewer.PreviewQuery(ctx, id)
//	    return err
//	})
package retry

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Config controls the retry behaviour.
type Config struct {
	// MaxAttempts is the total number of attempts (including the first).
	// Zero or negative values are treated as 1 (no retries).
	MaxAttempts int
	// InitialDelay is the wait before the second attempt; later waits double
	// up to MaxDelay.
	InitialDelay time.Duration
	MaxDelay     time.Duration
}

// DefaultConfig suits interactive chat turns: a user is waiting on the
// loading indicator, so the total budget stays well under two seconds.
var DefaultConfig = Config{
	MaxAttempts:  3,
	InitialDelay: 100 * time.Millisecond,
	MaxDelay:     800 * time.Millisecond,
}

// permanentError marks an error that must not be retried.
type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so Do returns it immediately. A nil err stays nil.
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsPermanent reports whether err was wrapped with Permanent.
func IsPermanent(err error) bool {
	var p *permanentError
	return errors.As(err, &p)
}

// Do calls fn up to cfg.MaxAttempts times, backing off exponentially between
// attempts. It stops early when ctx is cancelled, fn returns nil, or fn
// returns a Permanent error (which is unwrapped before being returned).
func Do(ctx context.Context, cfg Config, fn func() error) error {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = DefaultConfig.InitialDelay
	}
	if cfg.MaxDelay <= 0 {
		cfg.MaxDelay = DefaultConfig.MaxDelay
	}

	delay := cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.Join(lastErr, err)
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		var p *permanentError
		if errors.As(lastErr, &p) {
			return p.err
		}

		if attempt < cfg.MaxAttempts {
			slog.Debug("retry: host call failed, retrying",
				"attempt", attempt, "max", cfg.MaxAttempts,
				"err", lastErr, "delay", delay)

			select {
			case <-ctx.Done():
				return errors.Join(lastErr, ctx.Err())
			case <-time.After(delay):
			}

			delay *= 2
			if delay > cfg.MaxDelay {
				delay = cfg.MaxDelay
			}
		}
	}

	return lastErr
}
