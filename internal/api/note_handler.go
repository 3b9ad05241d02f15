package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/melroyanthony/provet/internal/api/shared"
	"github.com/melroyanthony/provet/internal/domain"
	"github.com/melroyanthony/provet/internal/generation"
)

// NoteGeneratorService is the slice of the note generator the handlers
// depend on; satisfied by *generation.NoteGenerator and by test doubles.
type NoteGeneratorService interface {
	Generate(ctx context.Context, raw map[string]any, opts generation.Options) (*domain.GenerationResult, error)
	RenderPreview(raw map[string]any) (string, error)
}

// GenerateNoteRequest is the wrapped request form: the consultation
// document plus optional per-request parameter overrides. Clients may also
// post the bare consultation document directly.
type GenerateNoteRequest struct {
	ConsultationData map[string]any `json:"consultation_data" validate:"required"`
	Model            string         `json:"model"             validate:"omitempty,min=1"`
	Temperature      *float64       `json:"temperature"       validate:"omitempty,gte=0,lte=2"`
	MaxTokens        int            `json:"max_tokens"        validate:"omitempty,gt=0"`
}

// NoteResponse is the response body for a generated note.
type NoteResponse struct {
	ID              string                      `json:"id"`
	NoteText        string                      `json:"note_text"`
	ModelUsed       string                      `json:"model_used"`
	Parameters      domain.GenerationParameters `json:"parameters"`
	SourceRecordRef string                      `json:"source_record_ref,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// PreviewResponse is the response body for a prompt preview.
type PreviewResponse struct {
	Prompt string `json:"prompt"`
}

// NoteHandler handles note-generation HTTP requests.
type NoteHandler struct {
	generator NoteGeneratorService
	validator *validator.Validate
	logger    *slog.Logger
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(generator NoteGeneratorService, logger *slog.Logger) *NoteHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteHandler{
		generator: generator,
		validator: validator.New(),
		logger:    logger,
	}
}

// GenerateNote handles POST /api/notes: runs the full pipeline and returns
// the generated note with its metadata.
func (h *NoteHandler) GenerateNote(w http.ResponseWriter, r *http.Request) {
	raw, opts, ok := h.decodeConsultation(w, r)
	if !ok {
		return
	}

	result, err := h.generator.Generate(r.Context(), raw, opts)
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NoteResponse{
		ID:              result.ID.String(),
		NoteText:        result.NoteText,
		ModelUsed:       result.ModelUsed,
		Parameters:      result.Parameters,
		SourceRecordRef: result.SourceRecordRef,
		CreatedAt:       result.CreatedAt,
	})
}

// PreviewPrompt handles POST /api/notes/preview: validates the document
// and returns the prompt that would be sent, without calling the model.
func (h *NoteHandler) PreviewPrompt(w http.ResponseWriter, r *http.Request) {
	raw, _, ok := h.decodeConsultation(w, r)
	if !ok {
		return
	}

	promptText, err := h.generator.RenderPreview(raw)
	if err != nil {
		h.respondPipelineError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PreviewResponse{Prompt: promptText})
}

// decodeConsultation accepts either the wrapped GenerateNoteRequest form
// or a bare consultation document as the request body. On failure it
// writes the error response and returns ok=false.
func (h *NoteHandler) decodeConsultation(
	w http.ResponseWriter,
	r *http.Request,
) (map[string]any, generation.Options, bool) {
	body, err := shared.ReadJSONBody(w, r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return nil, generation.Options{}, false
	}

	var doc map[string]any
	if err := shared.DecodeJSON(body, &doc); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Request body must be a JSON object")
		return nil, generation.Options{}, false
	}

	opts := generation.Options{SourceRecordRef: requestRef(r)}

	// The bare form: the body itself is the consultation document.
	if _, wrapped := doc["consultation_data"]; !wrapped {
		return doc, opts, true
	}

	var req GenerateNoteRequest
	if err := shared.DecodeJSON(body, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return nil, generation.Options{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return nil, generation.Options{}, false
	}

	opts.Model = req.Model
	opts.Temperature = req.Temperature
	opts.MaxTokens = req.MaxTokens
	return req.ConsultationData, opts, true
}

// requestRef identifies the source of the record in result metadata. The
// request ID is the most specific stable handle an HTTP upload has.
func requestRef(r *http.Request) string {
	if reqID := middlewareReqID(r); reqID != "" {
		return "request:" + reqID
	}
	return "request:" + uuid.NewString()
}

func (h *NoteHandler) respondPipelineError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	stage := generation.StageOf(err)

	logger := h.logger
	if status >= 500 {
		logger.ErrorContext(r.Context(), "note generation failed",
			"stage", string(stage),
			"status", status,
			"error", err)
	} else {
		logger.DebugContext(r.Context(), "note generation rejected",
			"stage", string(stage),
			"status", status,
			"error", err)
	}

	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err), validationDetails(err)...)
}
