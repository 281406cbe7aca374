package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no route matches the request.
	ErrNotFound = errors.New("resource not found")

	// ErrMissingAPIKey is returned by the auth gate when a key is configured but none was sent.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrInvalidAPIKey is returned by the auth gate when the provided key does not match.
	ErrInvalidAPIKey = errors.New("invalid API key")
)

// FieldError describes one violated constraint on a request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request body fails schema checks.
// It lists every failing field, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// UpstreamError is returned when the mapping provider reports a non-success
// status or the HTTP call to it fails.
type UpstreamError struct {
	Op      string // gateway operation, e.g. "searchPlaces"
	Status  string // provider status, e.g. "REQUEST_DENIED"
	Message string // provider error_message, if any

	// Payload and Err are for server-side logs only and never rendered to clients.
	Payload string
	Err     error
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("Google Maps API error: %s", e.Status)
	if e.Message != "" {
		msg += " - " + e.Message
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }
