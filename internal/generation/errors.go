package generation

import (
	"errors"
	"fmt"
)

// Common errors returned by the generation package and its completion
// clients. Clients classify provider failures into exactly one of these so
// the retry policy and the front ends can react without knowing the
// provider.
var (
	// ErrAuth is returned when the provider rejects the credential.
	// Fatal: retrying cannot help, the configuration must change.
	ErrAuth = errors.New("language model provider rejected the credential")

	// ErrRateLimited is returned when the provider throttles the request.
	// Retryable with backoff.
	ErrRateLimited = errors.New("language model provider rate limit exceeded")

	// ErrTransient is returned for temporary network or server failures
	// that might resolve on retry, including request timeouts.
	ErrTransient = errors.New("transient error calling language model provider")

	// ErrModel is returned when the provider answers but the response is
	// malformed or empty. Fatal for the request, not retried.
	ErrModel = errors.New("invalid response from language model")

	// ErrInvalidConfig is returned when a client or generator is
	// constructed with unusable configuration.
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Stage identifies the pipeline step an error originated from.
type Stage string

const (
	StageValidate Stage = "validate"
	StageRender   Stage = "render"
	StageComplete Stage = "complete"
	StageAssemble Stage = "assemble"
)

// PipelineError tags an error with the pipeline stage that produced it.
// The underlying error kind is preserved unchanged and reachable through
// errors.Is / errors.As, so callers can render a precise message without
// understanding the pipeline internals.
type PipelineError struct {
	Stage Stage
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// stageErr wraps err with its originating stage.
func stageErr(stage Stage, err error) error {
	return &PipelineError{Stage: stage, Err: err}
}

// StageOf reports the pipeline stage recorded on err, or an empty Stage
// when the error did not come through the pipeline.
func StageOf(err error) Stage {
	var perr *PipelineError
	if errors.As(err, &perr) {
		return perr.Stage
	}
	return ""
}
