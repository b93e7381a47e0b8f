package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/vasiliy-maslov/catering-service/internal/admin"
	"github.com/vasiliy-maslov/catering-service/internal/catering"
	"github.com/vasiliy-maslov/catering-service/internal/square"
)

type ErrorResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
	Code     string `json:"code,omitempty"`
	Details  string `json:"details,omitempty"`
	OrderID  string `json:"orderId,omitempty"`
}

type ValidationErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
}

// respondWithError sends {success:false, error:message}.
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"success":false,"error":"Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func respondWithValidationErrors(w http.ResponseWriter, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		log.Error().Err(err).Type("validation_error_type", err).Msg("Unexpected error type during validation")
		respondWithError(w, http.StatusInternalServerError, "Internal validation error")
		return
	}
	respondWithJSON(w, http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation failed",
		Details: formatValidationErrors(validationErrors),
	})
}

func formatValidationErrors(errs validator.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, fe := range errs {
		field := jsonPath(fe.Namespace())
		switch fe.Tag() {
		case "required":
			details[field] = "is required"
		case "min":
			details[field] = fmt.Sprintf("must be at least %s", fe.Param())
		case "email":
			details[field] = "must be a valid email address"
		default:
			details[field] = fmt.Sprintf("failed on the '%s' rule", fe.Tag())
		}
	}
	return details
}

// jsonPath drops the struct name from a validator namespace.
func jsonPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func mapErrorToStatusCode(err error) int {
	var apiErr *square.APIError
	switch {
	case errors.Is(err, admin.ErrMissingInvoiceID), errors.Is(err, admin.ErrMissingOrderID):
		return http.StatusBadRequest
	case errors.Is(err, admin.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, catering.ErrSubmissionInProgress):
		return http.StatusConflict
	case errors.As(err, &apiErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondWithServiceError writes the error body for a failed operation.
// Platform errors carry their category and code; unexpected failures carry
// the underlying error text in details.
func respondWithServiceError(w http.ResponseWriter, err error, fallback string) {
	statusCode := mapErrorToStatusCode(err)
	resp := ErrorResponse{Error: fallback}

	var subErr *catering.SubmissionError
	if errors.As(err, &subErr) {
		resp.OrderID = subErr.OrderID
	}

	var apiErr *square.APIError
	switch {
	case errors.As(err, &apiErr):
		resp.Error = apiErr.Error()
		resp.Category = apiErr.Category()
		resp.Code = apiErr.Code()
	case statusCode == http.StatusInternalServerError:
		resp.Details = err.Error()
	default:
		resp.Error = clientMessage(err, fallback)
	}

	respondWithJSON(w, statusCode, resp)
}

func clientMessage(err error, fallback string) string {
	switch {
	case errors.Is(err, admin.ErrMissingInvoiceID):
		return "Invoice ID is required"
	case errors.Is(err, admin.ErrMissingOrderID):
		return "Order ID is required"
	case errors.Is(err, admin.ErrOrderNotFound):
		return "Order not found"
	case errors.Is(err, catering.ErrSubmissionInProgress):
		return "An identical submission is already being processed"
	default:
		return fallback
	}
}
