package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/response"
)

type notificationService interface {
	Send(ctx context.Context, req dto.NotificationRequest) (dto.NotificationResult, error)
}

type notificationHandlers struct {
	ResponseHandler response.ResponseHandler
	NotificationSvc notificationService
}

func NewNotificationHandlers(deps *Deps) *notificationHandlers {
	return &notificationHandlers{
		ResponseHandler: deps.ResponseHandler,
		NotificationSvc: deps.NotificationSvc,
	}
}

func (h *notificationHandlers) NotificationRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Send)
	return r
}

func (h *notificationHandlers) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.NotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	res, err := h.NotificationSvc.Send(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}
