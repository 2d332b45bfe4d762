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

type tableService interface {
	List(ctx context.Context, table string, params dto.PageParams) (dto.Page[models.Document], error)
	ListOwned(ctx context.Context, caller *models.AuthUser, table string, params dto.PageParams) (dto.Page[models.Document], error)
	Delete(ctx context.Context, table, id string) error
	DeleteOwned(ctx context.Context, caller *models.AuthUser, table, id string) error
}

type tableHandlers struct {
	ResponseHandler response.ResponseHandler
	TableSvc        tableService
}

func NewTableHandlers(deps *Deps) *tableHandlers {
	return &tableHandlers{
		ResponseHandler: deps.ResponseHandler,
		TableSvc:        deps.TableSvc,
	}
}

// AdminRoutes serves /admin/tables. Mount behind RequireAdmin.
func (h *tableHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{table}", h.List)
	r.Delete("/{table}/{id}", h.Delete)
	return r
}

// RecordRoutes serves the caller's own Supabase rows.
func (h *tableHandlers) RecordRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{table}", h.ListOwned)
	r.Delete("/{table}/{id}", h.DeleteOwned)
	return r
}

func (h *tableHandlers) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.TableSvc.List(r.Context(), chi.URLParam(r, "table"), dto.ParsePageParams(r.URL.Query()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *tableHandlers) ListOwned(w http.ResponseWriter, r *http.Request) {
	page, err := h.TableSvc.ListOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "table"), dto.ParsePageParams(r.URL.Query()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *tableHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.TableSvc.Delete(r.Context(), chi.URLParam(r, "table"), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *tableHandlers) DeleteOwned(w http.ResponseWriter, r *http.Request) {
	if err := h.TableSvc.DeleteOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "table"), chi.URLParam(r, "id")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
