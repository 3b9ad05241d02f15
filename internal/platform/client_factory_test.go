package platform

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melroyanthony/provet/internal/config"
	"github.com/melroyanthony/provet/internal/generation"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		Provider:       "openai",
		APIKey:         "test-key",
		Model:          "gpt-4o",
		Temperature:    0.7,
		MaxTokens:      800,
		MaxRetries:     2,
		RetryBaseDelay: 2,
	}
}

func TestNewNoteGenerator_Wires(t *testing.T) {
	cfg := &config.Config{LLM: validLLMConfig()}

	generator, err := NewNoteGenerator(context.Background(), testLogger(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, generator)
}

func TestNewNoteGenerator_UnreadableInstructionsTaggedRenderStage(t *testing.T) {
	dir := t.TempDir()
	// A directory where the instructions file should be makes the read
	// fail with something other than not-exists.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "instructions.txt"), 0o755))

	cfg := &config.Config{LLM: validLLMConfig()}
	cfg.LLM.PromptDir = dir

	_, err := NewNoteGenerator(context.Background(), testLogger(), cfg)
	require.Error(t, err)
	assert.Equal(t, generation.StageRender, generation.StageOf(err))
}

func TestNewCompletionClient_UnknownProvider(t *testing.T) {
	cfg := validLLMConfig()
	cfg.Provider = "anthropic"

	_, err := NewCompletionClient(context.Background(), testLogger(), cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}

func TestNewCompletionClient_MissingAPIKey(t *testing.T) {
	cfg := validLLMConfig()
	cfg.APIKey = ""

	_, err := NewCompletionClient(context.Background(), testLogger(), cfg)
	assert.ErrorIs(t, err, generation.ErrInvalidConfig)
}
