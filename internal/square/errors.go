package square

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/square/square-go-sdk/core"
)

const (
	CategoryAPIError            = "API_ERROR"
	CategoryInvalidRequestError = "INVALID_REQUEST_ERROR"
	CodeNotFound                = "NOT_FOUND"
)

type ErrorDetail struct {
	Category string `json:"category"`
	Code     string `json:"code"`
	Detail   string `json:"detail,omitempty"`
	Field    string `json:"field,omitempty"`
}

// APIError is returned for any non-2xx response from the platform.
type APIError struct {
	StatusCode int
	Errors     []ErrorDetail
}

func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("square: unexpected status %d", e.StatusCode)
	}
	parts := make([]string, 0, len(e.Errors))
	for _, d := range e.Errors {
		msg := d.Code
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		if d.Field != "" {
			msg += " (" + d.Field + ")"
		}
		parts = append(parts, msg)
	}
	return "square: " + strings.Join(parts, "; ")
}

// Category of the first reported error.
func (e *APIError) Category() string {
	if len(e.Errors) == 0 {
		return CategoryAPIError
	}
	return e.Errors[0].Category
}

// Code of the first reported error.
func (e *APIError) Code() string {
	if len(e.Errors) == 0 {
		return http.StatusText(e.StatusCode)
	}
	return e.Errors[0].Code
}

// IsNotFound reports whether err is a platform NOT_FOUND response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusNotFound {
		return true
	}
	for _, d := range apiErr.Errors {
		if d.Code == CodeNotFound {
			return true
		}
	}
	return false
}

// wrapError turns an SDK status error into an *APIError carrying the
// platform's error list. Transport failures are wrapped as they are.
func wrapError(op string, err error) error {
	var sdkErr *core.APIError
	if !errors.As(err, &sdkErr) {
		return fmt.Errorf("square: %s failed: %w", op, err)
	}

	apiErr := &APIError{StatusCode: sdkErr.StatusCode}
	if body := sdkErr.Unwrap(); body != nil {
		var envelope struct {
			Errors []ErrorDetail `json:"errors"`
		}
		if json.Unmarshal([]byte(body.Error()), &envelope) == nil {
			apiErr.Errors = envelope.Errors
		}
	}
	return apiErr
}
