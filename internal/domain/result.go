package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenerationParameters records the sampling settings a note was generated
// with.
type GenerationParameters struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// GenerationResult is the outcome of one note-generation request. It is
// created once by the pipeline, immutable after creation, and owned by the
// caller (or the result writer) from then on.
type GenerationResult struct {
	ID              uuid.UUID            `json:"id"`
	NoteText        string               `json:"note_text"`
	ModelUsed       string               `json:"model_used"`
	Parameters      GenerationParameters `json:"parameters"`
	SourceRecordRef string               `json:"source_record_ref,omitempty"`
	Prompt          string               `json:"-"`
	CreatedAt       time.Time            `json:"created_at"`
}

// NewGenerationResult assembles a GenerationResult with a fresh ID and
// creation timestamp. Returns an error if the note text or model name is
// empty.
func NewGenerationResult(
	noteText string,
	modelUsed string,
	params GenerationParameters,
	sourceRef string,
	prompt string,
) (*GenerationResult, error) {
	if noteText == "" {
		return nil, ErrEmptyNote
	}
	if modelUsed == "" {
		return nil, ErrEmptyModel
	}

	return &GenerationResult{
		ID:              uuid.New(),
		NoteText:        noteText,
		ModelUsed:       modelUsed,
		Parameters:      params,
		SourceRecordRef: sourceRef,
		Prompt:          prompt,
		CreatedAt:       time.Now().UTC(),
	}, nil
}
