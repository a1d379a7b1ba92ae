// Package respond owns the response envelope and is the single place where
// domain errors become HTTP status codes. Nothing below the handlers writes
// to the response.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/arjunv/vidtube/internal/domain"
)

type Response struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`
}

type ErrorResponse struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Success    bool     `json:"success"`
	Errors     []string `json:"errors"`
}

func JSON(w http.ResponseWriter, status int, data any, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(Response{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
	})
}

// Error maps a domain error to the error envelope. Unrecognized errors are
// logged with detail server-side and returned to the caller generically;
// token failures are never distinguished beyond 401.
func Error(w http.ResponseWriter, r *http.Request, err error) {
	status, message := classify(err)

	if status == http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		message = "internal server error"
	}

	writeError(w, status, message)
}

// Unauthorized writes the 401 envelope without consulting an error, for
// callers like the auth middleware that must not leak a failure reason.
func Unauthorized(w http.ResponseWriter) {
	writeError(w, http.StatusUnauthorized, "unauthorized request")
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		StatusCode: status,
		Message:    message,
		Success:    false,
		Errors:     []string{},
	})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrMissingFields),
		errors.Is(err, domain.ErrMissingIdentifier),
		errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidSession):
		return http.StatusUnauthorized, "unauthorized request"
	case errors.Is(err, domain.ErrMediaNotFound),
		errors.Is(err, domain.ErrMediaNotOwned):
		// Not-owned reads 404 so the response does not confirm the key exists.
		return http.StatusNotFound, domain.ErrMediaNotFound.Error()
	default:
		return http.StatusInternalServerError, ""
	}
}
