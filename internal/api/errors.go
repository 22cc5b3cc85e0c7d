package api

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	domainerrors "github.com/writeflowapp/writeflow-server/internal/errors"
)

// APIError renders every failure as a flat {"error": message} body, the
// shape WriteFlow clients parse.
type APIError struct { //nolint:revive // API prefix is intentional for clarity
	status  int
	Message string `json:"error" doc:"Human-readable error message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *APIError) GetStatus() int {
	return e.status
}

// ContentType returns the content type for the error response.
func (e *APIError) ContentType(_ string) string {
	return "application/json"
}

// RegisterErrorHandler configures huma to emit domain errors.
// Call this after creating the huma.API but before registering routes.
func RegisterErrorHandler() {
	huma.NewError = func(status int, message string, errs ...error) huma.StatusError {
		for _, err := range errs {
			var domainErr *domainerrors.Error
			if errors.As(err, &domainErr) {
				return &APIError{
					status:  domainErr.HTTPStatus(),
					Message: domainErr.Message,
				}
			}
		}

		// Body validation failures read as plain bad requests.
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		if message == "" && len(errs) > 0 {
			message = errs[0].Error()
		}

		return &APIError{status: status, Message: message}
	}
}
