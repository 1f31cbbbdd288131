package directive

import (
	"fmt"
	"strings"
)

// ErrorKind represents the category of error raised by the pipeline
type ErrorKind int

const (
	// KindValidation indicates one or more parameters failed validation.
	// Expected and recoverable: the user corrects the inputs and retries.
	KindValidation ErrorKind = iota
	// KindArtifactWrite indicates the generated config could not be written
	// (permissions, missing directory). Environmental, not a user input
	// problem, and never mixed with validation errors.
	KindArtifactWrite
)

// String returns a human-readable name for the error kind
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "Validation Error"
	case KindArtifactWrite:
		return "Artifact Write Error"
	default:
		return fmt.Sprintf("ErrorKind(%d)", k)
	}
}

// PipelineError is an error raised while generating or writing a config
// artifact. Validation errors carry the full list of problems found in a
// single pass so the user can fix everything at once.
type PipelineError struct {
	Kind     ErrorKind
	Message  string
	Problems []string // individual validation messages (KindValidation only)
	Err      error    // underlying error (KindArtifactWrite)
}

// Error implements the error interface
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a validation error from the collected problem
// messages. The display message joins them in order.
func NewValidationError(problems []string) *PipelineError {
	return &PipelineError{
		Kind:     KindValidation,
		Message:  strings.Join(problems, ", "),
		Problems: problems,
	}
}

// NewArtifactWriteError creates an artifact write error
func NewArtifactWriteError(path string, err error) *PipelineError {
	return &PipelineError{
		Kind:    KindArtifactWrite,
		Message: fmt.Sprintf("could not write %s", path),
		Err:     err,
	}
}

// IsValidationError checks if an error is a pipeline validation error
func IsValidationError(err error) bool {
	pe, ok := err.(*PipelineError)
	return ok && pe.Kind == KindValidation
}

// IsArtifactWriteError checks if an error is an artifact write error
func IsArtifactWriteError(err error) bool {
	pe, ok := err.(*PipelineError)
	return ok && pe.Kind == KindArtifactWrite
}

// FormatValidationErrors formats validation problems into a user-friendly
// numbered list.
func FormatValidationErrors(problems []string) string {
	if len(problems) == 0 {
		return "No validation errors"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Configuration validation failed with %d error(s):\n", len(problems)))
	for i, p := range problems {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, p))
	}
	return sb.String()
}
