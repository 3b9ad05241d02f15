package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/melroyanthony/provet/internal/domain"
	"github.com/melroyanthony/provet/internal/prompt"
)

// Defaults are the model parameters applied when a request does not
// override them. They are read once at construction and treated as
// immutable for the life of the generator.
type Defaults struct {
	Model             string
	Temperature       float64
	MaxTokens         int
	SystemInstruction string
}

// Options carries per-request overrides and metadata. Zero values fall
// back to the generator's defaults; Temperature is a pointer so an explicit
// zero can be requested.
type Options struct {
	Model           string
	Temperature     *float64
	MaxTokens       int
	SourceRecordRef string
}

// NoteGenerator is the single entry point of the note-generation pipeline,
// consumed by both front ends. One Generate call walks
// validate -> render -> complete -> assemble; independent calls share no
// mutable state and may run concurrently.
type NoteGenerator struct {
	logger   *slog.Logger
	renderer *prompt.Renderer
	client   CompletionClient
	defaults Defaults
}

// NewNoteGenerator wires the pipeline dependencies. All of them are
// required; defaults must name a model and a positive token budget.
func NewNoteGenerator(
	logger *slog.Logger,
	renderer *prompt.Renderer,
	client CompletionClient,
	defaults Defaults,
) (*NoteGenerator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}
	if client == nil {
		return nil, errors.New("completion client cannot be nil")
	}
	if defaults.Model == "" {
		return nil, fmt.Errorf("%w: default model cannot be empty", ErrInvalidConfig)
	}
	if defaults.MaxTokens <= 0 {
		return nil, fmt.Errorf("%w: default max tokens must be positive", ErrInvalidConfig)
	}

	return &NoteGenerator{
		logger:   logger,
		renderer: renderer,
		client:   client,
		defaults: defaults,
	}, nil
}

// Generate runs the full pipeline for one raw consultation document and
// returns the assembled result. Errors keep their originating kind and are
// tagged with the stage that produced them.
//
// The note text is not reproducible across calls (the model is sampled at
// temperature > 0), but the prompt built for identical input is: that is
// the deterministic, testable part of the pipeline.
func (g *NoteGenerator) Generate(
	ctx context.Context,
	raw map[string]any,
	opts Options,
) (*domain.GenerationResult, error) {
	rec, err := domain.ParseRecord(raw)
	if err != nil {
		return nil, stageErr(StageValidate, err)
	}

	promptText := g.renderer.Render(rec)

	req := g.completionRequest(promptText, opts)
	g.logger.DebugContext(ctx, "requesting completion",
		"model", req.Model,
		"temperature", req.Temperature,
		"max_tokens", req.MaxTokens,
		"prompt_length", len(promptText))

	completion, err := g.client.Complete(ctx, req)
	if err != nil {
		return nil, stageErr(StageComplete, err)
	}

	noteText := strings.TrimSpace(completion)
	if noteText == "" {
		return nil, stageErr(StageComplete, fmt.Errorf("%w: empty completion", ErrModel))
	}

	result, err := domain.NewGenerationResult(
		noteText,
		req.Model,
		domain.GenerationParameters{
			Temperature: req.Temperature,
			MaxTokens:   req.MaxTokens,
		},
		opts.SourceRecordRef,
		promptText,
	)
	if err != nil {
		return nil, stageErr(StageAssemble, err)
	}

	g.logger.InfoContext(ctx, "discharge note generated",
		"result_id", result.ID.String(),
		"model", result.ModelUsed,
		"note_length", len(result.NoteText))

	return result, nil
}

// RenderPreview validates the raw document and returns the prompt that
// Generate would send, without calling the model. Useful for prompt-only
// previews and tests.
func (g *NoteGenerator) RenderPreview(raw map[string]any) (string, error) {
	rec, err := domain.ParseRecord(raw)
	if err != nil {
		return "", stageErr(StageValidate, err)
	}
	return g.renderer.Render(rec), nil
}

func (g *NoteGenerator) completionRequest(promptText string, opts Options) CompletionRequest {
	req := CompletionRequest{
		Model:             g.defaults.Model,
		SystemInstruction: g.defaults.SystemInstruction,
		Prompt:            promptText,
		Temperature:       g.defaults.Temperature,
		MaxTokens:         g.defaults.MaxTokens,
	}
	if opts.Model != "" {
		req.Model = opts.Model
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = opts.MaxTokens
	}
	return req
}
