package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")

	// Cart summarization failures. ErrEmptyCart means the client sent no
	// entries at all; ErrNoValidItems means every entry referenced an
	// unknown product.
	ErrEmptyCart    = errors.New("cart is empty")
	ErrNoValidItems = errors.New("no cart items could be resolved")

	// Verification flow failures.
	ErrUserNotFound     = errors.New("user not found")
	ErrCodeNotRequested = errors.New("no verification code requested")
	ErrCodeExpired      = errors.New("verification code expired")
	ErrCodeMismatch     = errors.New("verification code mismatch")

	// ErrPaymentLinkMissing means the provider accepted the payment but
	// returned no redirect URL. The order row is already persisted and is
	// deliberately left in pending for administrative follow-up.
	ErrPaymentLinkMissing = errors.New("payment provider returned no confirmation url")
)

// ValidationError describes a rejected input field. Maps to HTTP 400.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConfigurationError means a required server-side setting is absent.
// Admin routes fail closed with this when no admin token is configured.
type ConfigurationError struct {
	Setting string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Setting)
}

// NewConfigurationError creates a configuration error for a setting.
func NewConfigurationError(setting string) *ConfigurationError {
	return &ConfigurationError{Setting: setting}
}

// UpstreamError wraps a failure from an external dependency (payment
// provider, mail transport). Maps to HTTP 500 without rolling back any
// order row already written.
type UpstreamError struct {
	Service string
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps err as a failure of the named external service.
func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}
