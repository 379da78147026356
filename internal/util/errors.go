package util

import (
	"errors"
	"fmt"
)

var (
	ErrModuleNotFound           = errors.New("module not found")
	ErrModuleNotAvailable       = errors.New("module is locked until the previous module is completed")
	ErrModuleComingSoon         = errors.New("module content is not yet available")
	ErrNoTestQuestions          = errors.New("module has no test questions")
	ErrSectionNotFound          = errors.New("practice section not found")
	ErrNoAnswers                = errors.New("no answers provided")
	ErrNoMessages               = errors.New("no messages provided")
	ErrMissingReference         = errors.New("missing userAnswer or referenceAnswer")
	ErrTaskNotFound             = errors.New("trainer task not found")
	ErrCredentialsNotConfigured = errors.New("GigaChat credentials not configured")
)

// UpstreamAuthError reports a failed credential exchange with the completion
// provider.
type UpstreamAuthError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamAuthError) Error() string {
	return fmt.Sprintf("GigaChat auth error %d: %s", e.StatusCode, e.Body)
}

// UpstreamError reports a non-success response from the completions endpoint.
// Body is the raw provider response, kept for diagnostics.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("GigaChat API error %d", e.StatusCode)
}

// IsValidation reports whether err is caused by bad caller input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrNoAnswers) ||
		errors.Is(err, ErrNoMessages) ||
		errors.Is(err, ErrMissingReference) ||
		errors.Is(err, ErrNoTestQuestions) ||
		errors.Is(err, ErrSectionNotFound)
}
