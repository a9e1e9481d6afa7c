package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

var validate = validator.New()

// RequireMethod validates that the HTTP request uses the specified method.
// Returns true if the method matches, false otherwise (and writes error response).
func RequireMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// WriteJSON writes a JSON response with the specified status code and data.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteDetail writes an error response with a human-readable detail field.
func WriteDetail(w http.ResponseWriter, statusCode int, detail string) error {
	return WriteJSON(w, statusCode, models.ErrorResponse{Detail: detail})
}

// WriteServiceError maps the error taxonomy to status codes: validation
// failures to 400, provider and timeout failures to 500 with
// distinguishable messages.
func WriteServiceError(w http.ResponseWriter, err error) {
	var validationErr *interfaces.ValidationError
	if errors.As(err, &validationErr) {
		WriteDetail(w, http.StatusBadRequest, validationErr.Message)
		return
	}

	var timeoutErr *interfaces.TimeoutError
	if errors.As(err, &timeoutErr) {
		WriteDetail(w, http.StatusInternalServerError, "Processing failed: "+timeoutErr.Error())
		return
	}

	var providerErr *interfaces.ProviderError
	if errors.As(err, &providerErr) {
		WriteDetail(w, http.StatusInternalServerError, "Processing failed: "+providerErr.Error())
		return
	}

	WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
}

// ValidateRequest runs struct tag validation and translates the first
// failure into its wire-level detail message. The messages map is keyed
// by "Field.tag" (e.g. "Query.max") with a "Field" fallback.
func ValidateRequest(req interface{}, messages map[string]string) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
			return interfaces.NewValidationError("%s", msg)
		}
		if msg, ok := messages[fe.Field()]; ok {
			return interfaces.NewValidationError("%s", msg)
		}
		return interfaces.NewValidationError("Invalid value for field '%s'", fe.Field())
	}
	return interfaces.NewValidationError("Invalid request body")
}
