package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

// SuccessEnvelope wraps every 2xx JSON reply.
type SuccessEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	if status == http.StatusNoContent {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(SuccessEnvelope{Success: true, Data: data}); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode success response", "error", err)
	}
}
