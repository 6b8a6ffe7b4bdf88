// Package controllers exposes the services over JSON HTTP handlers.
package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"blogspace/app/feed"
	"blogspace/app/repositories"
	"blogspace/app/services"

	"go.uber.org/zap"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error string `json:"error"`
}

// sendJSON writes data with the given status. The header is already sent when
// encoding fails, so the error is only logged.
func sendJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Debug("failed to encode response", zap.Int("status", status), zap.Error(err))
	}
}

func sendError(w http.ResponseWriter, logger *zap.Logger, message string, status int) {
	sendJSON(w, logger, status, errorBody{Error: message})
}

// decode reads a JSON request body into v, rejecting unknown fields.
func decode(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// statusFor maps service and repository errors to HTTP status codes.
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, services.ErrEmailTaken), errors.Is(err, repositories.ErrDuplicateID),
		errors.Is(err, feed.ErrLoadInProgress), errors.Is(err, feed.ErrNoMorePosts):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// handleError writes err as a JSON error. Server side failures are logged and
// their detail is not exposed.
func handleError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		sendError(w, logger, "internal server error", status)
		return
	}
	sendError(w, logger, err.Error(), status)
}
