package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

type dashboardConfig interface {
	Raw() []byte
}

type configureHandlers struct {
	Config dashboardConfig
}

func NewConfigureHandlers(deps *Deps) *configureHandlers {
	return &configureHandlers{Config: deps.DashboardConfig}
}

func (h *configureHandlers) ConfigureRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetConfig)
	return r
}

// GetConfig serves the dashboard config file as-is.
func (h *configureHandlers) GetConfig(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(h.Config.Raw()); err != nil {
		logger.FromContext(r.Context()).Error("failed to write dashboard config", "error", err)
	}
}
