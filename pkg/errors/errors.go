package errors

import (
	"errors"
	"fmt"
)

// Error codes
const (
	CodeFingerprint = "FINGERPRINT_ERROR"
	CodeMatch       = "MATCH_ERROR"
	CodeStore       = "STORE_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeNarrative   = "NARRATIVE_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
)

// ErrNoVideosResolved is the single fatal condition of fingerprint computation:
// none of the requested identifiers resolved to a stored video.
var ErrNoVideosResolved = errors.New("no videos resolved from provided identifiers")

type EngineError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *EngineError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *EngineError) Unwrap() error {
	return e.Cause
}

func NewEngineError(message, code string, context map[string]any) *EngineError {
	return &EngineError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *EngineError) WithCause(cause error) *EngineError {
	e.Cause = cause
	return e
}

type ValidationError struct {
	*EngineError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		EngineError: &EngineError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

type StoreError struct {
	*EngineError
	Operation string
	Key       string
}

func NewStoreError(message, operation, key string, cause error) *StoreError {
	return &StoreError{
		EngineError: &EngineError{
			Message: message,
			Code:    CodeStore,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type CacheError struct {
	*EngineError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		EngineError: &EngineError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type FingerprintError struct {
	*EngineError
	ProfileID string
}

func NewFingerprintError(message, profileID string, cause error) *FingerprintError {
	return &FingerprintError{
		EngineError: &EngineError{
			Message: message,
			Code:    CodeFingerprint,
			Context: map[string]any{
				"profile_id": profileID,
			},
			Cause: cause,
		},
		ProfileID: profileID,
	}
}

type NarrativeError struct {
	*EngineError
	Provider string
}

func NewNarrativeError(message, provider string, cause error) *NarrativeError {
	return &NarrativeError{
		EngineError: &EngineError{
			Message: message,
			Code:    CodeNarrative,
			Context: map[string]any{
				"provider": provider,
			},
			Cause: cause,
		},
		Provider: provider,
	}
}
