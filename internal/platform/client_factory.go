// Package platform wires infrastructure adapters to the configuration.
package platform

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/melroyanthony/provet/internal/config"
	"github.com/melroyanthony/provet/internal/generation"
	"github.com/melroyanthony/provet/internal/platform/gemini"
	"github.com/melroyanthony/provet/internal/platform/openai"
	"github.com/melroyanthony/provet/internal/prompt"
)

// NewNoteGenerator wires the full pipeline from configuration: prompt
// renderer, provider client with retry, and the facade. Both front ends
// build their pipeline through this single entry point.
func NewNoteGenerator(
	ctx context.Context,
	logger *slog.Logger,
	cfg *config.Config,
) (*generation.NoteGenerator, error) {
	renderer, err := prompt.NewRendererFromDir(cfg.LLM.PromptDir)
	if err != nil {
		return nil, &generation.PipelineError{Stage: generation.StageRender, Err: err}
	}

	client, err := NewCompletionClient(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, err
	}

	return generation.NewNoteGenerator(logger, renderer, client, generation.Defaults{
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		MaxTokens:         cfg.LLM.MaxTokens,
		SystemInstruction: prompt.SystemInstruction(cfg.LLM.CustomInstruction),
	})
}

// NewCompletionClient constructs the configured provider client and wraps
// it with the configured retry policy.
func NewCompletionClient(
	ctx context.Context,
	logger *slog.Logger,
	cfg config.LLMConfig,
) (generation.CompletionClient, error) {
	var (
		client generation.CompletionClient
		err    error
	)

	switch cfg.Provider {
	case "openai":
		client, err = openai.NewClient(logger, openai.Config{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
		})
	case "gemini":
		client, err = gemini.NewClient(ctx, logger, gemini.Config{
			APIKey: cfg.APIKey,
		})
	default:
		err = fmt.Errorf("%w: unknown provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	policy := generation.RetryPolicy{
		MaxRetries: cfg.MaxRetries,
		BaseDelay:  time.Duration(cfg.RetryBaseDelay) * time.Second,
	}
	return generation.WithRetry(client, policy, logger), nil
}
