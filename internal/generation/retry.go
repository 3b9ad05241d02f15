package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy bounds how often and how patiently a completion call is
// retried. Only ErrRateLimited and ErrTransient failures are retried; every
// other error class propagates immediately.
type RetryPolicy struct {
	// MaxRetries is the number of additional attempts after the first.
	MaxRetries int

	// BaseDelay is the backoff before the first retry; subsequent delays
	// grow exponentially with jitter.
	BaseDelay time.Duration
}

// DefaultRetryPolicy retries twice with a two second base delay.
var DefaultRetryPolicy = RetryPolicy{MaxRetries: 2, BaseDelay: 2 * time.Second}

// WithRetry wraps a CompletionClient with bounded retry for the two
// transient error classes. The wrapped client stays free of retry logic so
// each provider only has to classify its failures.
func WithRetry(client CompletionClient, policy RetryPolicy, logger *slog.Logger) CompletionClient {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultRetryPolicy.BaseDelay
	}
	return &retryClient{
		next:   client,
		policy: policy,
		logger: logger,
	}
}

// retryClient holds no mutable state, so one wrapped client is safe for
// concurrent Complete calls.
type retryClient struct {
	next   CompletionClient
	policy RetryPolicy
	logger *slog.Logger
}

func (c *retryClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= c.policy.MaxRetries; attempt++ {
		text, err := c.next.Complete(ctx, req)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return "", err
		}
		if attempt == c.policy.MaxRetries {
			c.logger.WarnContext(ctx, "completion retry budget exhausted",
				"attempts", attempt+1,
				"error", err)
			return "", err
		}

		delay := c.backoff(attempt)
		c.logger.InfoContext(ctx, "retrying completion after transient failure",
			"attempt", attempt+1,
			"max_attempts", c.policy.MaxRetries+1,
			"delay", delay,
			"error", err)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %v", ErrTransient, ctx.Err())
		}
	}

	return "", lastErr
}

// backoff computes baseDelay * 2^attempt scaled by a jitter factor in
// [0.5, 1.0) so concurrent callers do not retry in lockstep. The top-level
// rand functions synchronize internally.
func (c *retryClient) backoff(attempt int) time.Duration {
	backoff := float64(c.policy.BaseDelay) * math.Pow(2, float64(attempt))
	jitter := 0.5 + rand.Float64()*0.5
	return time.Duration(backoff * jitter)
}

func isRetryable(err error) bool {
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrTransient)
}
