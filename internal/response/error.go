package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// classified is how an error is reported: to the client and to the log.
type classified struct {
	status  int
	code    string
	message string
	level   slog.Level
	logMsg  string
	attrs   []any
}

// Classify maps err onto its HTTP status and error code.
func Classify(err error) (status int, code string) {
	c := classify(err)
	return c.status, c.code
}

func classify(err error) classified {
	var (
		notFound  *errs.NotFoundError
		exists    *errs.AlreadyExistsError
		invalid   *errs.ValidationError
		unauth    *errs.UnauthorizedError
		forbidden *errs.ForbiddenError
		database  *errs.DatabaseError
		upstream  *errs.ExternalServiceError
		tooLarge  *http.MaxBytesError
	)

	switch {
	case errors.As(err, &notFound):
		return classified{http.StatusNotFound, "not_found", notFound.Message, slog.LevelWarn, "resource not found", nil}
	case errors.As(err, &exists):
		return classified{http.StatusConflict, "already_exists", exists.Message, slog.LevelWarn, "resource already exists", nil}
	case errors.As(err, &invalid):
		return classified{http.StatusBadRequest, "invalid_input", invalid.Message, slog.LevelWarn, "validation failed", nil}
	case errors.As(err, &tooLarge):
		msg := fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
		return classified{http.StatusRequestEntityTooLarge, "too_large", msg, slog.LevelWarn, "request too large", nil}
	case errors.As(err, &unauth):
		return classified{http.StatusUnauthorized, "unauthorized", unauth.Message, slog.LevelWarn, "unauthorized", nil}
	case errors.As(err, &forbidden):
		return classified{http.StatusForbidden, "forbidden", forbidden.Message, slog.LevelWarn, "forbidden", nil}
	case errors.As(err, &database):
		return classified{http.StatusInternalServerError, "internal_error", "An error occurred", slog.LevelError,
			"database error", []any{"operation", database.Operation}}
	case errors.As(err, &upstream):
		c := classified{http.StatusBadGateway, "service_unavailable", upstream.Message, slog.LevelError,
			"external service error", []any{"service", upstream.Service, "transient", upstream.Transient}}
		if upstream.Transient {
			c.status, c.level = http.StatusServiceUnavailable, slog.LevelWarn
		}
		return c
	default:
		return classified{http.StatusInternalServerError, "internal_error", "An unexpected error occurred", slog.LevelError,
			"unexpected error", []any{"type", fmt.Sprintf("%T", err)}}
	}
}

func (h *responseHandler) WriteError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(ErrorResponse{Code: code, Message: message}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode error response", "error", err, "status", status, "code", code)
	}
}

// HandleError logs err with the request logger and writes the mapped reply.
// Internal details never reach the client for 5xx database or unknown errors.
func (h *responseHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	c := classify(err)
	logger.FromContext(r.Context()).Log(r.Context(), c.level, c.logMsg, append(c.attrs, "error", err)...)
	h.WriteError(w, r, c.status, c.code, c.message)
}
