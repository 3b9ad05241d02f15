package api

import (
	"errors"
	"net/http"

	"github.com/melroyanthony/provet/internal/domain"
	"github.com/melroyanthony/provet/internal/generation"
)

// MapErrorToStatusCode maps pipeline errors to HTTP status codes without
// leaking internal error details to clients. Transient and rate-limit
// errors only reach here after the retry budget is spent, so they report
// the service as temporarily unavailable.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, generation.ErrRateLimited),
		errors.Is(err, generation.ErrTransient):
		return http.StatusServiceUnavailable
	case errors.Is(err, generation.ErrAuth),
		errors.Is(err, generation.ErrModel):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for a
// pipeline error.
func GetSafeErrorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return "Consultation data failed validation"
	case errors.Is(err, generation.ErrRateLimited):
		return "Language model provider is rate limiting requests, try again later"
	case errors.Is(err, generation.ErrTransient):
		return "Language model provider is temporarily unavailable"
	case errors.Is(err, generation.ErrAuth):
		return "Language model provider rejected the service credential"
	case errors.Is(err, generation.ErrModel):
		return "Language model returned an unusable response"
	default:
		return "An unexpected error occurred"
	}
}

// validationDetails extracts the per-field messages from a validation
// error, or nil when err is not one.
func validationDetails(err error) []string {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	details := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		details[i] = f.String()
	}
	return details
}
