// Package errors provides RFC 7807 Problem Details for the restaurant HTTP API.
package errors

import (
	"fmt"
	"net/http"
)

// ProblemDetail represents an RFC 7807 Problem Details response.
// See: https://www.rfc-editor.org/rfc/rfc7807
type ProblemDetail struct {
	// Type is a URI reference that identifies the problem type.
	Type string `json:"type"`
	// Title is a short, human-readable summary of the problem type.
	Title string `json:"title"`
	// Status is the HTTP status code for this occurrence.
	Status int `json:"status"`
	// Detail is a human-readable explanation specific to this occurrence.
	Detail string `json:"detail,omitempty"`
	// Instance is a URI reference that identifies the specific occurrence.
	Instance string `json:"instance,omitempty"`
	// Details lists every problem found when a request fails on more than one line.
	Details []string `json:"details,omitempty"`
	// Extensions holds additional problem-specific properties.
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Error implements the error interface.
func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

// WithDetail returns a copy with the given detail message.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithInstance returns a copy with the given instance URI.
func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

// WithDetails returns a copy carrying the given problem list.
func (p ProblemDetail) WithDetails(details []string) ProblemDetail {
	p.Details = append([]string(nil), details...)
	return p
}

// WithExtension returns a copy with an additional extension property.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	extensions := make(map[string]any, len(p.Extensions)+1)
	for k, v := range p.Extensions {
		extensions[k] = v
	}
	extensions[key] = value
	p.Extensions = extensions
	return p
}

// Common problem types as URI references.
const (
	TypeValidation = "/problems/validation-error"
	TypeNotFound   = "/problems/not-found"
	TypeConflict   = "/problems/conflict"
	TypeInternal   = "/problems/internal-error"
	TypeBadRequest = "/problems/bad-request"
)

var (
	// ErrNotFound indicates the requested resource was not found.
	ErrNotFound = ProblemDetail{
		Type:   TypeNotFound,
		Title:  "Resource Not Found",
		Status: http.StatusNotFound,
	}

	// ErrValidation indicates the request failed validation.
	ErrValidation = ProblemDetail{
		Type:   TypeValidation,
		Title:  "Validation Error",
		Status: http.StatusBadRequest,
	}

	// ErrBadRequest indicates the request was malformed.
	ErrBadRequest = ProblemDetail{
		Type:   TypeBadRequest,
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
	}

	// ErrConflict indicates a conflict with the current state.
	ErrConflict = ProblemDetail{
		Type:   TypeConflict,
		Title:  "Conflict",
		Status: http.StatusConflict,
	}

	// ErrInternal indicates an unexpected server error.
	ErrInternal = ProblemDetail{
		Type:   TypeInternal,
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
	}
)

// NewValidationProblem creates a validation error listing every problem found.
func NewValidationProblem(detail string, problems []string) ProblemDetail {
	return ErrValidation.WithDetail(detail).WithDetails(problems)
}

// NewNotFoundProblem creates a not found error for a specific resource.
func NewNotFoundProblem(resourceType string, identifier any) ProblemDetail {
	return ErrNotFound.
		WithDetail(fmt.Sprintf("%s with identifier '%v' not found", resourceType, identifier)).
		WithExtension("resourceType", resourceType).
		WithExtension("identifier", identifier)
}
