package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
)

type userService interface {
	ListUsers(ctx context.Context) ([]models.AdminUser, error)
	GetUser(ctx context.Context, uid string) (models.AdminUser, error)
	SetRole(ctx context.Context, caller *models.AuthUser, req dto.SetRoleRequest) (models.AdminUser, error)
	VerificationLink(ctx context.Context, email string) (string, error)
	SyncSupabaseUsers(ctx context.Context) (dto.UserSyncResult, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         userService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

// UserRoutes serves /admin/auth. Mount behind RequireAdmin.
func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/users", h.ListUsers)
	r.Get("/users/{uid}", h.GetUser)
	r.Post("/set-role", h.SetRole)
	r.Post("/sync-users", h.SyncUsers)
	r.Post("/verify-link", h.VerificationLink)
	return r
}

func (h *userHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserSvc.ListUsers(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, users)
}

func (h *userHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserSvc.GetUser(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func (h *userHandlers) SetRole(w http.ResponseWriter, r *http.Request) {
	var req dto.SetRoleRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	user, err := h.UserSvc.SetRole(r.Context(), middleware.User(r.Context()), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, user)
}

func (h *userHandlers) SyncUsers(w http.ResponseWriter, r *http.Request) {
	res, err := h.UserSvc.SyncSupabaseUsers(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, res)
}

func (h *userHandlers) VerificationLink(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyLinkRequest
	if err := decodeJSON(r, &req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	link, err := h.UserSvc.VerificationLink(r.Context(), req.Email)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, map[string]string{"link": link})
}
