package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rcarvalho/Portfolio-Consolidator-Backend/internal/validation"
)

// parseJSON decodes a request body into the given request type.
// Unknown fields are rejected so client typos surface as 400s instead of
// silently dropped fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}

	return req, nil
}

// isValidationError reports whether err carries field-level validation
// failures, which map to 400 rather than 500.
func isValidationError(err error) bool {
	var validationErr *validation.Error
	return errors.As(err, &validationErr)
}
