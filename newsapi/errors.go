package newsapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation is returned for malformed input. It is detected before
	// any file is read or any connection is opened.
	ErrValidation = errors.New("newsapi: validation failed")

	// ErrRemote is the category of every *APIError.
	ErrRemote = errors.New("newsapi: remote error")
)

// ErrorDetail is one entry of the errors array in a failed response.
type ErrorDetail struct {
	Code    string `json:"code"`
	KeyPath []any  `json:"keyPath,omitempty"`
	Value   any    `json:"value,omitempty"`
	Message string `json:"message,omitempty"`
}

// APIError is returned when the server reports a failure, either with a
// non-2xx status or with an error envelope.
type APIError struct {
	StatusCode int
	Method     string
	Path       string

	// Errors holds the server's error entries, when the body had any.
	Errors []ErrorDetail

	// Body is the raw response body.
	Body []byte
}

// Code returns the code of the first error entry, or an empty string.
func (e *APIError) Code() string {
	if len(e.Errors) == 0 {
		return ""
	}

	return e.Errors[0].Code
}

// HasCode reports whether any error entry carries code.
func (e *APIError) HasCode(code string) bool {
	for _, d := range e.Errors {
		if d.Code == code {
			return true
		}
	}

	return false
}

func (e *APIError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "newsapi: %s %s: status %d", e.Method, e.Path, e.StatusCode)

	if len(e.Errors) > 0 {
		codes := make([]string, 0, len(e.Errors))
		for _, d := range e.Errors {
			codes = append(codes, d.Code)
		}

		fmt.Fprintf(&b, ": %s", strings.Join(codes, ", "))
	}

	return b.String()
}

func (e *APIError) Unwrap() error {
	return ErrRemote
}

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
