package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melroyanthony/provet/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(testLogger(), Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)
	return client
}

func completionJSON(content string) string {
	return fmt.Sprintf(`{"choices":[{"message":{"role":"assistant","content":%q}}]}`, content)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(testLogger(), Config{})
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewClient_RequiresLogger(t *testing.T) {
	_, err := NewClient(nil, Config{APIKey: "k"})
	assert.Error(t, err)
}

func TestComplete_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody chatRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		fmt.Fprint(w, completionJSON("  Sparky is recovering well.  "))
	})

	text, err := client.Complete(context.Background(), generation.CompletionRequest{
		Model:             "gpt-4o",
		SystemInstruction: "You are a veterinary assistant.",
		Prompt:            "Generate a discharge note.",
		Temperature:       0.7,
		MaxTokens:         800,
	})
	require.NoError(t, err)

	assert.Equal(t, "Sparky is recovering well.", text)
	assert.Equal(t, "/chat/completions", gotPath)
	assert.Equal(t, "Bearer test-key", gotAuth)

	assert.Equal(t, "gpt-4o", gotBody.Model)
	require.Len(t, gotBody.Messages, 2)
	assert.Equal(t, "system", gotBody.Messages[0].Role)
	assert.Equal(t, "You are a veterinary assistant.", gotBody.Messages[0].Content)
	assert.Equal(t, "user", gotBody.Messages[1].Role)
	assert.Equal(t, "Generate a discharge note.", gotBody.Messages[1].Content)
	assert.Equal(t, 0.7, gotBody.Temperature)
	assert.Equal(t, 800, gotBody.MaxTokens)
}

func TestComplete_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, generation.ErrAuth},
		{http.StatusForbidden, generation.ErrAuth},
		{http.StatusTooManyRequests, generation.ErrRateLimited},
		{http.StatusRequestTimeout, generation.ErrTransient},
		{http.StatusInternalServerError, generation.ErrTransient},
		{http.StatusBadGateway, generation.ErrTransient},
		{http.StatusServiceUnavailable, generation.ErrTransient},
		{http.StatusBadRequest, generation.ErrModel},
		{http.StatusNotFound, generation.ErrModel},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprintf("status %d", tc.status), func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				fmt.Fprint(w, `{"error":{"message":"provider detail","type":"some_error"}}`)
			})

			_, err := client.Complete(context.Background(), generation.CompletionRequest{Model: "gpt-4o"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)
			assert.ErrorContains(t, err, "provider detail")
		})
	}
}

func TestComplete_TransportErrorIsTransient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	client, err := NewClient(testLogger(), Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), generation.CompletionRequest{Model: "gpt-4o"})
	assert.ErrorIs(t, err, generation.ErrTransient)
}

func TestComplete_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"undecodable body", `{"choices": [`},
		{"error payload with 200", `{"error":{"message":"quota hiccup"}}`},
		{"no choices", `{"choices":[]}`},
		{"blank completion", completionJSON("   ")},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprint(w, tc.body)
			})

			_, err := client.Complete(context.Background(), generation.CompletionRequest{Model: "gpt-4o"})
			require.Error(t, err)
			assert.ErrorIs(t, err, generation.ErrModel)
		})
	}
}

func TestComplete_UnparseableErrorBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "upstream gateway meltdown")
	})

	_, err := client.Complete(context.Background(), generation.CompletionRequest{Model: "gpt-4o"})
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrTransient)
	assert.ErrorContains(t, err, "no error detail")
}
