// Package response provides utilities for HTTP response handling.
package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/TusharSA25/Weather-Dashboard/internal/api/middleware"
	"github.com/TusharSA25/Weather-Dashboard/internal/api/models"
	"github.com/TusharSA25/Weather-Dashboard/internal/weather"
)

// JSON writes a JSON response with the given status code.
// Includes X-Request-Id header for correlation.
func JSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// Error writes an {error, message} error response.
func Error(w http.ResponseWriter, r *http.Request, body *models.ErrorBody) {
	if body.RequestID == "" {
		body.RequestID = middleware.GetRequestID(r.Context())
	}
	body.Write(w)
}

// WeatherError maps a weather domain error onto the endpoint error
// contract: unknown city is 404, a missing credential and upstream
// failures are 500, each with its own stable label.
func WeatherError(w http.ResponseWriter, r *http.Request, err error) {
	requestID := middleware.GetRequestID(r.Context())

	switch {
	case errors.Is(err, weather.ErrCityNotFound):
		models.NewCityNotFound(requestID, err.Error()).Write(w)
	case errors.Is(err, weather.ErrMissingAPIKey):
		models.NewMissingAPIKey(requestID).Write(w)
	default:
		models.NewUpstreamUnavailable(requestID, "weather data is temporarily unavailable").Write(w)
	}
}

// BadRequest writes a 400 Bad Request error response.
func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	requestID := middleware.GetRequestID(r.Context())
	models.NewBadRequest(requestID, message).Write(w)
}

// Unauthorized writes a 401 Unauthorized error response.
func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	requestID := middleware.GetRequestID(r.Context())
	models.NewUnauthorized(requestID, message).Write(w)
}

// NotFound writes a 404 Not Found error response.
func NotFound(w http.ResponseWriter, r *http.Request, message string) {
	requestID := middleware.GetRequestID(r.Context())
	models.NewCityNotFound(requestID, message).Write(w)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, r *http.Request, message string) {
	requestID := middleware.GetRequestID(r.Context())
	models.NewInternalError(requestID, message).Write(w)
}

// NoContent writes a 204 No Content response.
// Includes X-Request-Id header for correlation.
func NoContent(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if requestID != "" {
		w.Header().Set("X-Request-Id", requestID)
	}
	w.WriteHeader(http.StatusNoContent)
}
