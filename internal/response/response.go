// file: internal/response/response.go
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"vidhub/internal/services"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ===============================
// RESPONSE TYPES
// ===============================

// APIResponse is the uniform envelope every endpoint returns. Errors is
// populated on failures only.
type APIResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
	Errors     []string    `json:"errors,omitempty"`
}

// ===============================
// RESPONSE BUILDER
// ===============================

// Builder writes standardized envelopes and logs failures.
type Builder struct {
	logger *zap.Logger
}

// NewBuilder creates a new response builder.
func NewBuilder(logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{logger: logger}
}

// WriteSuccess writes a 200 envelope.
func (b *Builder) WriteSuccess(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.writeJSON(w, r, &APIResponse{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteCreated writes a 201 envelope.
func (b *Builder) WriteCreated(w http.ResponseWriter, r *http.Request, data interface{}, message string) {
	b.writeJSON(w, r, &APIResponse{
		StatusCode: http.StatusCreated,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// WriteError converts a service error into its envelope. Unknown error
// types become a masked 500 so internals never leak to clients.
func (b *Builder) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		status = svcErr.GetStatusCode()
		message = svcErr.Message
	}

	if status >= http.StatusInternalServerError {
		b.logger.Error("Request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		// Clients get the generic text regardless of the wrapped cause.
		message = "internal server error"
		if svcErr != nil && svcErr.Message != "" {
			message = svcErr.Message
		}
	}

	b.writeJSON(w, r, &APIResponse{
		StatusCode: status,
		Data:       nil,
		Message:    message,
		Success:    false,
		Errors:     errorDetails(err, status, message),
	})
}

// errorDetails expands a validation failure into per-field messages. Other
// failures repeat the client-facing message so the field is never empty.
func errorDetails(err error, status int, message string) []string {
	if status < http.StatusInternalServerError {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			details := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				details = append(details, fmt.Sprintf("%s failed on the %q rule", fe.Field(), fe.Tag()))
			}
			return details
		}
	}
	return []string{message}
}

func (b *Builder) writeJSON(w http.ResponseWriter, r *http.Request, resp *APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		b.logger.Error("Failed to encode response",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
}
