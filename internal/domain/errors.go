package domain

import "strings"

// APIError represents a standardized API error with HTTP status code
type APIError struct {
	Type   string            `json:"type"`
	Title  string            `json:"title"`
	Status int               `json:"status"`
	Detail string            `json:"detail,omitempty"`
	Errors map[string]string `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return e.Title
}

// ValidationErrors is an ordered list of human-readable input problems.
// Quote creation collects every independent problem before returning one of these.
type ValidationErrors struct {
	Messages []string
}

func (e *ValidationErrors) Error() string {
	return strings.Join(e.Messages, "; ")
}

// ReferenceDataError is returned when pricing tables cannot serve a quote
type ReferenceDataError struct {
	Message string
}

func (e *ReferenceDataError) Error() string {
	return e.Message
}

// ValidationMessages provides human-readable validation error messages
// These map validator tags to user-friendly messages
var ValidationMessages = map[string]string{
	"required": "This field is required",
	"email":    "Must be a valid email address",
	"max":      "Exceeds maximum length",
	"min":      "Below minimum length",
	"gte":      "Must be greater than or equal to minimum value",
	"gt":       "Must be greater than minimum value",
	"lte":      "Must be less than or equal to maximum value",
	"uuid":     "Must be a valid UUID",
	"oneof":    "Must be one of the allowed values",
	"numeric":  "Must be a numeric value",
	"len":      "Must be exactly the specified length",
}

// GetValidationMessage returns a human-readable message for a validation tag
func GetValidationMessage(tag string) string {
	if msg, ok := ValidationMessages[tag]; ok {
		return msg
	}
	return "Validation failed: " + tag
}

// Common error types for RFC 7807 Problem Details
const (
	ErrorTypeValidation     = "validation_error"
	ErrorTypeNotFound       = "not_found"
	ErrorTypeBadRequest     = "bad_request"
	ErrorTypeConflict       = "conflict"
	ErrorTypeUnauthorized   = "unauthorized"
	ErrorTypeForbidden      = "forbidden"
	ErrorTypeBadGateway     = "bad_gateway"
	ErrorTypeServiceUnavail = "service_unavailable"
	ErrorTypeInternal       = "internal_error"
)
