// Package openai implements the generation.CompletionClient interface over
// the OpenAI Chat Completions HTTP API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/melroyanthony/provet/internal/generation"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Config holds the client settings.
type Config struct {
	// APIKey is the bearer credential. Required.
	APIKey string

	// BaseURL overrides the API endpoint, e.g. for an OpenAI-compatible
	// gateway. Defaults to the public OpenAI endpoint.
	BaseURL string

	// Timeout bounds a single request. Defaults to 60s. A timed-out call
	// surfaces as a transient error so the retry policy can apply.
	Timeout time.Duration
}

// Client calls the Chat Completions endpoint. It performs exactly one
// request per Complete call; retries are layered on by the caller.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient validates the configuration and returns a ready Client.
func NewClient(logger *slog.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai API key cannot be empty", generation.ErrInvalidConfig)
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends the system and user messages and returns the assistant
// reply. Failures are classified into the generation package's error
// kinds: 401/403 as ErrAuth, 429 as ErrRateLimited, 408 and 5xx and
// transport failures as ErrTransient, anything structurally wrong with the
// response as ErrModel.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: req.Model,
		Messages: []chatMessage{
			{Role: "system", Content: req.SystemInstruction},
			{Role: "user", Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransient, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", generation.ErrTransient, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyStatus(ctx, resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: undecodable response body: %v", generation.ErrModel, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("%w: %s", generation.ErrModel, parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", generation.ErrModel)
	}

	text := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", generation.ErrModel)
	}
	return text, nil
}

func (c *Client) classifyStatus(ctx context.Context, status int, body []byte) error {
	c.logger.WarnContext(ctx, "openai API request failed",
		"status", status,
		"body_length", len(body))

	detail := apiErrorMessage(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", generation.ErrAuth, status, detail)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", generation.ErrRateLimited, status, detail)
	case status == http.StatusRequestTimeout || status >= 500:
		return fmt.Errorf("%w: status %d: %s", generation.ErrTransient, status, detail)
	default:
		return fmt.Errorf("%w: status %d: %s", generation.ErrModel, status, detail)
	}
}

// apiErrorMessage pulls the human-readable message out of an OpenAI error
// body, falling back to a generic marker when the body is not the expected
// shape.
func apiErrorMessage(body []byte) string {
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != nil && parsed.Error.Message != "" {
		return parsed.Error.Message
	}
	return "no error detail"
}
