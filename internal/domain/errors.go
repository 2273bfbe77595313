package domain

import (
	"errors"
	"fmt"
	"time"
)

// Stable machine-readable error codes surfaced to API and tool clients.
const (
	CodeValidationError    = "VALIDATION_ERROR"
	CodeProviderError      = "PROVIDER_ERROR"
	CodeRateLimitError     = "RATE_LIMIT_ERROR"
	CodeTimeoutError       = "TIMEOUT_ERROR"
	CodeCacheError         = "CACHE_ERROR"
	CodeConfigurationError = "CONFIGURATION_ERROR"
	CodeSearchError        = "SEARCH_ERROR"
	CodeCacheMgmtError     = "CACHE_MANAGEMENT_ERROR"
	CodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is the base error for the flight finder. Every error the
// service emits carries a stable code, a human-readable message, and an
// optional context map with structured detail. Specific error kinds embed
// DomainError so callers can match them with errors.As.
type DomainError struct {
	Code    string
	Message string
	Context map[string]any
	Err     error
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *DomainError) Unwrap() error { return e.Err }

// WithContext attaches a key/value pair and returns the error for chaining.
func (e *DomainError) WithContext(key string, value any) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ValidationError signals invalid input. It records which field failed and
// the rejected value.
type ValidationError struct {
	DomainError
	Field string
	Value any
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{
		DomainError: DomainError{
			Code:    CodeValidationError,
			Message: message,
			Context: map[string]any{"field": field, "value": value},
		},
		Field: field,
		Value: value,
	}
}

// ProviderError signals a failure inside a specific provider back-end.
type ProviderError struct {
	DomainError
	Provider string
}

// NewProviderError wraps a provider failure with the provider name.
func NewProviderError(provider, message string, err error) *ProviderError {
	return &ProviderError{
		DomainError: DomainError{
			Code:    CodeProviderError,
			Message: message,
			Context: map[string]any{"provider": provider},
			Err:     err,
		},
		Provider: provider,
	}
}

// RateLimitError signals a provider rejected the request for exceeding its
// rate limit. It is a ProviderError refinement, so errors.As against
// *ProviderError matches it. RetryAfter is zero when the provider gave no
// hint.
type RateLimitError struct {
	ProviderError
	RetryAfter time.Duration
}

// NewRateLimitError creates a RateLimitError for a provider.
func NewRateLimitError(provider string, retryAfter time.Duration, err error) *RateLimitError {
	e := &RateLimitError{
		ProviderError: ProviderError{
			DomainError: DomainError{
				Code:    CodeRateLimitError,
				Message: fmt.Sprintf("rate limit exceeded for provider %s", provider),
				Context: map[string]any{"provider": provider},
				Err:     err,
			},
			Provider: provider,
		},
		RetryAfter: retryAfter,
	}
	if retryAfter > 0 {
		e.Context["retry_after_seconds"] = retryAfter.Seconds()
	}
	return e
}

// As surfaces the embedded ProviderError so errors.As treats a rate limit
// rejection as a provider failure.
func (e *RateLimitError) As(target any) bool {
	if p, ok := target.(**ProviderError); ok {
		*p = &e.ProviderError
		return true
	}
	return false
}

// TimeoutError signals a provider operation exceeded its deadline. Like
// RateLimitError it is a ProviderError refinement.
type TimeoutError struct {
	ProviderError
	Timeout time.Duration
}

// NewTimeoutError creates a TimeoutError for a provider operation. A zero
// timeout means the deadline was inherited and its length is unknown.
func NewTimeoutError(provider string, timeout time.Duration, err error) *TimeoutError {
	msg := fmt.Sprintf("provider %s timed out", provider)
	ctx := map[string]any{"provider": provider}
	if timeout > 0 {
		msg = fmt.Sprintf("provider %s timed out after %s", provider, timeout)
		ctx["timeout_seconds"] = timeout.Seconds()
	}
	return &TimeoutError{
		ProviderError: ProviderError{
			DomainError: DomainError{
				Code:    CodeTimeoutError,
				Message: msg,
				Context: ctx,
				Err:     err,
			},
			Provider: provider,
		},
		Timeout: timeout,
	}
}

// As surfaces the embedded ProviderError so errors.As treats a timeout as a
// provider failure.
func (e *TimeoutError) As(target any) bool {
	if p, ok := target.(**ProviderError); ok {
		*p = &e.ProviderError
		return true
	}
	return false
}

// CacheError signals a failure in the result cache layer.
type CacheError struct {
	DomainError
	Operation string
}

// NewCacheError creates a CacheError for a cache operation.
func NewCacheError(operation, message string, err error) *CacheError {
	return &CacheError{
		DomainError: DomainError{
			Code:    CodeCacheError,
			Message: message,
			Context: map[string]any{"operation": operation},
			Err:     err,
		},
		Operation: operation,
	}
}

// ConfigurationError signals invalid or missing service configuration.
type ConfigurationError struct {
	DomainError
	Key string
}

// NewConfigurationError creates a ConfigurationError for a config key.
func NewConfigurationError(key, message string) *ConfigurationError {
	return &ConfigurationError{
		DomainError: DomainError{
			Code:    CodeConfigurationError,
			Message: message,
			Context: map[string]any{"key": key},
		},
		Key: key,
	}
}

// SearchError signals that a search use case failed as a whole, for example
// when every provider errored out.
type SearchError struct {
	DomainError
}

// NewSearchError wraps a failed search.
func NewSearchError(message string, err error) *SearchError {
	return &SearchError{
		DomainError: DomainError{
			Code:    CodeSearchError,
			Message: message,
			Err:     err,
		},
	}
}

// CacheManagementError signals a failed cache statistics or clear operation.
type CacheManagementError struct {
	DomainError
}

// NewCacheManagementError wraps a failed cache management operation.
func NewCacheManagementError(message string, err error) *CacheManagementError {
	return &CacheManagementError{
		DomainError: DomainError{
			Code:    CodeCacheMgmtError,
			Message: message,
			Err:     err,
		},
	}
}

// Coded is implemented by every error in this package through the embedded
// DomainError. errors.As against it finds the outermost domain error in a
// wrap chain.
type Coded interface {
	error
	DomainCode() string
	DomainMessage() string
	DomainContext() map[string]any
}

// DomainCode returns the stable error code.
func (e *DomainError) DomainCode() string { return e.Code }

// DomainMessage returns the human-readable message.
func (e *DomainError) DomainMessage() string { return e.Message }

// DomainContext returns the structured context map, possibly nil.
func (e *DomainError) DomainContext() map[string]any { return e.Context }

// ErrorCode extracts the stable code from any error produced by this package.
// Unknown errors map to CodeInternalError.
func ErrorCode(err error) string {
	var c Coded
	if errors.As(err, &c) {
		return c.DomainCode()
	}
	return CodeInternalError
}

// ErrorContext extracts the structured context map, or nil for foreign errors.
func ErrorContext(err error) map[string]any {
	var c Coded
	if errors.As(err, &c) {
		return c.DomainContext()
	}
	return nil
}
