package models

import (
	"encoding/json"
	"net/http"
)

// Error labels returned in the "error" field. The dashboard branches
// on these to choose what to tell the user.
const (
	ErrorCityNotFound   = "city not found"
	ErrorUpstream       = "service temporarily unavailable"
	ErrorMissingAPIKey  = "API key not configured"
	ErrorBadRequest     = "bad request"
	ErrorUnauthorized   = "unauthorized"
	ErrorTooManyRequest = "too many requests"
	ErrorInternal       = "internal error"
)

// ErrorBody is the JSON error payload for all API endpoints.
type ErrorBody struct {
	// Error is a short, stable label identifying the failure class.
	Error string `json:"error"`

	// Message is a human-readable explanation safe to show users.
	// Never a raw stack trace or upstream payload.
	Message string `json:"message"`

	// Status is the HTTP status code, not serialized.
	Status int `json:"-"`

	// RequestID is echoed in the X-Request-Id header, not the body.
	RequestID string `json:"-"`
}

// NewErrorBody creates an ErrorBody with the given parameters.
func NewErrorBody(status int, label, message, requestID string) *ErrorBody {
	return &ErrorBody{
		Error:     label,
		Message:   message,
		Status:    status,
		RequestID: requestID,
	}
}

// Write writes the ErrorBody as JSON to the ResponseWriter.
func (e *ErrorBody) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	if e.RequestID != "" {
		w.Header().Set("X-Request-Id", e.RequestID)
	}
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// NewCityNotFound creates a 404 error body for an unresolvable city.
func NewCityNotFound(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusNotFound, ErrorCityNotFound, message, requestID)
}

// NewUpstreamUnavailable creates a 500 error body for upstream failure.
func NewUpstreamUnavailable(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusInternalServerError, ErrorUpstream, message, requestID)
}

// NewMissingAPIKey creates the 500 error body served by every weather
// endpoint while no upstream credential is configured.
func NewMissingAPIKey(requestID string) *ErrorBody {
	return NewErrorBody(http.StatusInternalServerError, ErrorMissingAPIKey,
		"set OPENWEATHER_API_KEY to enable weather data", requestID)
}

// NewBadRequest creates a 400 error body.
func NewBadRequest(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusBadRequest, ErrorBadRequest, message, requestID)
}

// NewUnauthorized creates a 401 error body.
func NewUnauthorized(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusUnauthorized, ErrorUnauthorized, message, requestID)
}

// NewTooManyRequests creates a 429 error body.
func NewTooManyRequests(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusTooManyRequests, ErrorTooManyRequest, message, requestID)
}

// NewInternalError creates a 500 error body.
func NewInternalError(requestID, message string) *ErrorBody {
	return NewErrorBody(http.StatusInternalServerError, ErrorInternal, message, requestID)
}
