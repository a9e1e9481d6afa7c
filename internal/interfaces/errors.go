package interfaces

import "fmt"

// ValidationError reports rejected input. Handlers map it to a 400 with
// the message verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ProviderError reports a failed call to an external provider (embedding,
// completion, or vector index). Handlers map it to a 500.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError wraps an upstream failure with the provider name.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// TimeoutError reports that a provider call exceeded its deadline. Kept
// distinct from ProviderError so callers can tell budget exhaustion from
// upstream failure.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s request timed out: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// NewTimeoutError wraps a deadline failure with the provider name.
func NewTimeoutError(provider string, err error) *TimeoutError {
	return &TimeoutError{Provider: provider, Err: err}
}
