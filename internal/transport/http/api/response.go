package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/notifications"
	"hrportal/internal/domain/records"
	"hrportal/internal/domain/session"
)

type Error struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Notice is the one-line toast the client shows after a mutation.
type Notice struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type Envelope struct {
	Success   bool    `json:"success"`
	Data      any     `json:"data,omitempty"`
	Error     *Error  `json:"error,omitempty"`
	Notice    *Notice `json:"notice,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Warn("write json failed", "err", err)
	}
}

func Success(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Data: data, RequestID: requestID})
}

func Created(w http.ResponseWriter, data any, requestID string) {
	WriteJSON(w, http.StatusCreated, Envelope{Success: true, Data: data, RequestID: requestID})
}

// Done answers a successful mutation with the updated record and a success notice.
func Done(w http.ResponseWriter, status int, data any, message, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   true,
		Data:      data,
		Notice:    &Notice{Type: "success", Message: message},
		RequestID: requestID,
	})
}

func Fail(w http.ResponseWriter, status int, code, message, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message},
		Notice:    &Notice{Type: "error", Message: message},
		RequestID: requestID,
	})
}

func FailWithDetails(w http.ResponseWriter, status int, code, message string, details map[string]any, requestID string) {
	WriteJSON(w, status, Envelope{
		Success:   false,
		Error:     &Error{Code: code, Message: message, Details: details},
		Notice:    &Notice{Type: "error", Message: message},
		RequestID: requestID,
	})
}

// FromError writes the failure response for a service error.
func FromError(w http.ResponseWriter, err error, requestID string) {
	var accessErr *auth.AccessError
	var validationErr *records.ValidationError
	switch {
	case errors.As(err, &validationErr):
		FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
			map[string]any{"fields": []map[string]string{{"field": validationErr.Field, "reason": validationErr.Reason}}},
			requestID)
	case errors.As(err, &accessErr):
		Fail(w, http.StatusForbidden, "forbidden", accessErr.Message, requestID)
	case errors.Is(err, auth.ErrForbidden):
		Fail(w, http.StatusForbidden, "forbidden", "You don't have permission to perform this action", requestID)
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrExpired):
		Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		Fail(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", requestID)
	case errors.Is(err, records.ErrNotFound), errors.Is(err, notifications.ErrNotFound):
		Fail(w, http.StatusNotFound, "not_found", "record not found", requestID)
	case errors.Is(err, records.ErrInvalidState):
		Fail(w, http.StatusConflict, "invalid_state", err.Error(), requestID)
	case errors.Is(err, records.ErrConflict):
		Fail(w, http.StatusConflict, "conflict", err.Error(), requestID)
	default:
		slog.Error("request failed", "err", err, "request_id", requestID)
		Fail(w, http.StatusInternalServerError, "internal_error", "internal error", requestID)
	}
}
