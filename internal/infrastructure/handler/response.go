// Package handler exposes the dashboard API over HTTP
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/damon-houk/forex-bureau-dashboard/internal/domain/entity"
	"github.com/damon-houk/forex-bureau-dashboard/internal/infrastructure/logger"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success     bool   `json:"success"`
	Error       string `json:"error"`
	Status      int    `json:"status"`
	Description string `json:"description,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// Middleware wraps a route handler
type Middleware func(http.Handler) http.Handler

func (m Middleware) wrap(h http.HandlerFunc) http.Handler {
	if m == nil {
		return h
	}
	return m(h)
}

var validate = validator.New()

// sendJSON writes body with the given status
func sendJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// sendErrorResponse sends a standardized error response
func sendErrorResponse(w http.ResponseWriter, log logger.Logger, message, description string, statusCode int, requestID string) {
	resp := ErrorResponse{
		Success:     false,
		Error:       message,
		Status:      statusCode,
		Description: description,
		RequestID:   requestID,
	}

	log.Debug("Sending error response", map[string]interface{}{
		"request_id":  requestID,
		"status_code": statusCode,
		"message":     message,
	})

	sendJSON(w, statusCode, resp)
}

// sendServiceError maps a service error onto its HTTP status
func sendServiceError(w http.ResponseWriter, log logger.Logger, err error, action, requestID string) {
	fields := map[string]interface{}{
		"request_id": requestID,
		"action":     action,
		"error":      err.Error(),
	}

	switch {
	case errors.Is(err, entity.ErrValidation):
		log.Warn("Validation failed", fields)
		sendErrorResponse(w, log, "Invalid request", err.Error(), http.StatusBadRequest, requestID)
	case errors.Is(err, entity.ErrNotFound):
		log.Warn("Record not found", fields)
		sendErrorResponse(w, log, "Not found", err.Error(), http.StatusNotFound, requestID)
	case errors.Is(err, entity.ErrDuplicate):
		log.Warn("Duplicate record", fields)
		sendErrorResponse(w, log, "Already exists", err.Error(), http.StatusConflict, requestID)
	default:
		log.Error("Unexpected error", fields)
		sendErrorResponse(w, log, "Internal server error",
			"An unexpected error occurred while trying to "+action, http.StatusInternalServerError, requestID)
	}
}

// decodeRequest parses a JSON body into dst and validates it
func decodeRequest(w http.ResponseWriter, r *http.Request, log logger.Logger, dst interface{}, requestID string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Warn("Invalid request body", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Invalid request body",
			"The request body could not be parsed as valid JSON", http.StatusBadRequest, requestID)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		log.Warn("Request validation failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		sendErrorResponse(w, log, "Invalid request", describeValidation(err), http.StatusBadRequest, requestID)
		return false
	}

	return true
}

func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.Param() != "" {
		return fe.Field() + " failed the " + fe.Tag() + "=" + fe.Param() + " check"
	}
	return fe.Field() + " failed the " + fe.Tag() + " check"
}
