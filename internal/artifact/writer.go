// Package artifact persists generation results as JSON files. It is the
// result sink consumed by the CLI front end; the HTTP front end returns
// results in the response body instead.
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/melroyanthony/provet/internal/domain"
)

// payload is the on-disk shape of a discharge note artifact.
type payload struct {
	DischargeNote   string                      `json:"discharge_note"`
	ModelUsed       string                      `json:"model_used"`
	Parameters      domain.GenerationParameters `json:"parameters"`
	SourceRecordRef string                      `json:"source_record_ref,omitempty"`
	GeneratedAt     time.Time                   `json:"generated_at"`
}

// Writer saves generation results into a fixed output directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer targeting dir. The directory is created on
// first write, not here, so constructing a Writer never touches the
// filesystem.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Write stores the result as <input stem>_discharge.json inside the output
// directory and returns the full path of the written file.
func (w *Writer) Write(result *domain.GenerationResult, inputPath string) (string, error) {
	if result == nil {
		return "", fmt.Errorf("result cannot be nil")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", w.dir, err)
	}

	data, err := json.MarshalIndent(payload{
		DischargeNote:   result.NoteText,
		ModelUsed:       result.ModelUsed,
		Parameters:      result.Parameters,
		SourceRecordRef: result.SourceRecordRef,
		GeneratedAt:     result.CreatedAt,
	}, "", "    ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal discharge note: %w", err)
	}

	outputPath := filepath.Join(w.dir, artifactName(inputPath))
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write discharge note to %s: %w", outputPath, err)
	}

	return outputPath, nil
}

// artifactName derives the artifact filename from the input file's stem:
// consultation.json becomes consultation_discharge.json.
func artifactName(inputPath string) string {
	base := filepath.Base(inputPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return stem + "_discharge.json"
}
