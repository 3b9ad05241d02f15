// Package domain defines the core business entities and errors.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when consultation input fails validation.
	// It is the match target for any *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidFormat is returned when data is not in the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrEmptyNote is returned when a generation result carries no note text.
	ErrEmptyNote = errors.New("note text cannot be empty")

	// ErrEmptyModel is returned when a generation result names no model.
	ErrEmptyModel = errors.New("model name cannot be empty")
)

// FieldError describes a single structurally invalid field in the input.
// Field is the dotted path into the raw document, e.g.
// "consultation.clinical_notes[2].note".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

// ValidationError aggregates every invalid field found in one validation
// pass. Callers get the complete list so the input can be fixed once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrValidation) hold for any ValidationError.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func (e *ValidationError) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *ValidationError) addf(field, format string, args ...any) {
	e.add(field, fmt.Sprintf(format, args...))
}

// orNil returns the error itself when at least one field failed, nil
// otherwise, so validation call sites can return it directly.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
