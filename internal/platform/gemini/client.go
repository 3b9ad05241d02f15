// Package gemini implements the generation.CompletionClient interface over
// Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/melroyanthony/provet/internal/generation"
)

// Config holds the client settings.
type Config struct {
	// APIKey is the Gemini API credential. Required.
	APIKey string
}

// Client calls the Gemini generate-content endpoint. One request per
// Complete call; retries are layered on by the caller.
type Client struct {
	client *genai.Client
	logger *slog.Logger
}

// NewClient validates the configuration and initializes the underlying
// genai client.
func NewClient(ctx context.Context, logger *slog.Logger, cfg Config) (*Client, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	return &Client{client: client, logger: logger}, nil
}

// Complete sends the prompt with the system instruction and sampling
// parameters and returns the model's text. Failures are mapped onto the
// generation package's error kinds the same way the OpenAI client maps
// HTTP statuses.
func (c *Client) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(float32(req.Temperature)),
		MaxOutputTokens:   int32(req.MaxTokens),
		SystemInstruction: genai.NewContentFromText(req.SystemInstruction, genai.RoleUser),
	}
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return "", c.classify(ctx, err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", fmt.Errorf("%w: empty completion text", generation.ErrModel)
	}
	return text, nil
}

func (c *Client) classify(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		c.logger.WarnContext(ctx, "gemini API request failed",
			"code", apiErr.Code,
			"status", apiErr.Status)
		switch {
		case apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden:
			return fmt.Errorf("%w: %s", generation.ErrAuth, apiErr.Message)
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("%w: %s", generation.ErrRateLimited, apiErr.Message)
		case apiErr.Code == http.StatusRequestTimeout || apiErr.Code >= 500:
			return fmt.Errorf("%w: %s", generation.ErrTransient, apiErr.Message)
		default:
			return fmt.Errorf("%w: %s", generation.ErrModel, apiErr.Message)
		}
	}
	// No structured API error means the call never got a response.
	return fmt.Errorf("%w: %v", generation.ErrTransient, err)
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
