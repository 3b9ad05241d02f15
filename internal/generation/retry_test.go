package generation

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastPolicy keeps retry tests quick without disabling the backoff path.
var fastPolicy = RetryPolicy{MaxRetries: 2, BaseDelay: time.Millisecond}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestWithRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
		calls++
		if calls < 3 {
			return "", fmt.Errorf("%w: http 429", ErrRateLimited)
		}
		return "note text", nil
	}), fastPolicy, discardLogger())

	text, err := client.Complete(context.Background(), CompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, "note text", text)
	assert.Equal(t, 3, calls)
}

func TestWithRetry_ExhaustsBudget(t *testing.T) {
	for _, sentinel := range []error{ErrRateLimited, ErrTransient} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			calls := 0
			client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
				calls++
				return "", fmt.Errorf("%w: provider detail", sentinel)
			}), fastPolicy, discardLogger())

			_, err := client.Complete(context.Background(), CompletionRequest{})
			require.Error(t, err)
			assert.ErrorIs(t, err, sentinel)
			// One initial attempt plus two retries.
			assert.Equal(t, 3, calls)
		})
	}
}

func TestWithRetry_FatalErrorsNotRetried(t *testing.T) {
	for _, sentinel := range []error{ErrAuth, ErrModel, ErrInvalidConfig} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			calls := 0
			client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
				calls++
				return "", fmt.Errorf("%w: details", sentinel)
			}), fastPolicy, discardLogger())

			_, err := client.Complete(context.Background(), CompletionRequest{})
			assert.ErrorIs(t, err, sentinel)
			assert.Equal(t, 1, calls)
		})
	}
}

func TestWithRetry_ZeroRetriesSingleAttempt(t *testing.T) {
	calls := 0
	client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
		calls++
		return "", fmt.Errorf("%w: http 429", ErrRateLimited)
	}), RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}, discardLogger())

	_, err := client.Complete(context.Background(), CompletionRequest{})
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
		cancel()
		return "", fmt.Errorf("%w: http 503", ErrTransient)
	}), RetryPolicy{MaxRetries: 2, BaseDelay: time.Minute}, discardLogger())

	start := time.Now()
	_, err := client.Complete(ctx, CompletionRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransient)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestWithRetry_ConcurrentCompletes(t *testing.T) {
	// One wrapped client shared across goroutines, all backing off at the
	// same time; run with -race.
	var calls atomic.Int64
	client := WithRetry(CompletionFunc(func(_ context.Context, _ CompletionRequest) (string, error) {
		calls.Add(1)
		return "", fmt.Errorf("%w: http 503", ErrTransient)
	}), fastPolicy, discardLogger())

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Complete(context.Background(), CompletionRequest{})
			assert.ErrorIs(t, err, ErrTransient)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(workers*(fastPolicy.MaxRetries+1)), calls.Load())
}

func TestBackoff_GrowsWithinJitterBounds(t *testing.T) {
	c := WithRetry(CompletionFunc(nil), RetryPolicy{MaxRetries: 3, BaseDelay: time.Second}, discardLogger()).(*retryClient)

	for attempt := 0; attempt < 4; attempt++ {
		expected := float64(time.Second) * float64(int(1)<<attempt)
		for i := 0; i < 50; i++ {
			d := c.backoff(attempt)
			assert.GreaterOrEqual(t, float64(d), expected*0.5)
			assert.Less(t, float64(d), expected)
		}
	}
}
