package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/internal/validation"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardConfig dashboardConfig
	DocumentSvc     documentService
	UserSvc         userService
	NotificationSvc notificationService
	UploadSvc       uploadService
	WebpageSvc      webpageService
	TableSvc        tableService // nil when Supabase is not configured
	SupabaseProxy   http.Handler // nil when Supabase is not configured
	MaxUploadBytes  int64
}

// decodeJSON reads a JSON body into v and runs struct validation on it.
// Malformed bodies are reported as validation errors.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValidationError("request body is empty")
		}
		return errs.NewValidationError("request body is not valid JSON")
	}
	return validation.Struct(v)
}
