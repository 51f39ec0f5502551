package sandbox

import (
	"context"
	"time"

	"github.com/user/tempsandbox/pkg/ports"
)

// RetryPolicy bounds how removal reacts to the transient delete error.
// Only errors for which IsTransient reports true are retried.
type RetryPolicy struct {
	// MaxRetries is the number of extra attempts after the first one.
	MaxRetries int
	// Backoff is the fixed wait before each retry.
	Backoff time.Duration
}

// DefaultRetryPolicy retries twice, 100ms apart.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 2, Backoff: 100 * time.Millisecond}
}

// do runs fn until it succeeds, fails with a non-transient error, or the
// retries are used up. The last error is returned unchanged.
func (p RetryPolicy) do(ctx context.Context, log ports.Logger, fn func() error) error {
	for attempt := 0; ; attempt++ {
		err := fn()
		if err == nil || !IsTransient(err) || attempt >= p.MaxRetries {
			return err
		}

		log.Debug("Transient delete error, retrying in %s (%d/%d): %v", p.Backoff, attempt+1, p.MaxRetries, err)

		timer := time.NewTimer(p.Backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
