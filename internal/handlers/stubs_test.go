package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
	writeErrorCode   string
	writeErrorMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	s.writeErrorCode = code
	s.writeErrorMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// realResponseHandler writes the production JSON envelopes with logs discarded.
func realResponseHandler() response.ResponseHandler {
	return response.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// withUser injects an authenticated user into the request context.
func withUser(r *http.Request, user *models.AuthUser) *http.Request {
	ctx := middleware.WithUser(r.Context(), user)
	ctx = logger.ToContext(ctx, slog.New(logger.NewTestHandler(slog.LevelInfo)))
	return r.WithContext(ctx)
}

// withChiParams injects chi URL parameters into the request context.
func withChiParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}
