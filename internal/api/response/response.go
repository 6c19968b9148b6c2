package response

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nexodus/nexodus-api/internal/domain"
	"github.com/rs/zerolog/log"
)

// Response represents a standard API response
type Response struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
	Error   any  `json:"error,omitempty"`
}

// JSON sends a JSON response
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(Response{
		Success: status >= 200 && status < 300,
		Data:    data,
	})
}

// Error sends an error response
func Error(w http.ResponseWriter, status int, message any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	json.NewEncoder(w).Encode(Response{
		Success: false,
		Error:   message,
	})
}

// OK sends a 200 OK response with data
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Created sends a 201 Created response with data
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

// BadRequest sends a 400 Bad Request response
func BadRequest(w http.ResponseWriter, message any) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(w http.ResponseWriter, message any) {
	Error(w, http.StatusUnauthorized, message)
}

// Forbidden sends a 403 Forbidden response
func Forbidden(w http.ResponseWriter, message any) {
	Error(w, http.StatusForbidden, message)
}

// NotFound sends a 404 Not Found response
func NotFound(w http.ResponseWriter, message any) {
	Error(w, http.StatusNotFound, message)
}

// Conflict sends a 409 Conflict response
func Conflict(w http.ResponseWriter, message any) {
	Error(w, http.StatusConflict, message)
}

// FromError maps a service error onto the matching status code. Validation
// messages are safe to echo; internal failures are logged and replaced with
// a fixed body so no internal detail reaches the client.
func FromError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		BadRequest(w, err.Error())
	case errors.Is(err, domain.ErrEmailTaken):
		Conflict(w, "A user with this email already exists.")
	case errors.Is(err, domain.ErrUnauthenticated):
		Unauthorized(w, "Invalid format or unknown user.")
	case errors.Is(err, domain.ErrForbidden):
		Forbidden(w, "User doesn't have permission to access this resource.")
	case errors.Is(err, domain.ErrNotFound):
		NotFound(w, "Requested resource doesn't exist.")
	case errors.Is(err, domain.ErrUnavailable):
		log.Error().Err(err).Msg("store unavailable")
		Error(w, http.StatusServiceUnavailable, "Service temporarily unavailable.")
	default:
		log.Error().Err(err).Msg("internal error")
		Error(w, http.StatusInternalServerError, "An unexpected error occurred.")
	}
}
