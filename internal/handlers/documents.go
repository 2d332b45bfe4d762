package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
)

type documentService interface {
	List(ctx context.Context, collection string, params dto.PageParams) (dto.Page[models.Document], error)
	Get(ctx context.Context, collection, id string) (models.Document, error)
	Create(ctx context.Context, caller *models.AuthUser, collection string, doc models.Document) (models.Document, error)
	Update(ctx context.Context, collection, id string, doc models.Document) (models.Document, error)
	Delete(ctx context.Context, collection, id string) error

	ListOwned(ctx context.Context, caller *models.AuthUser, collection string, params dto.PageParams) (dto.Page[models.Document], error)
	GetOwned(ctx context.Context, caller *models.AuthUser, collection, id string) (models.Document, error)
	CreateOwned(ctx context.Context, caller *models.AuthUser, collection string, doc models.Document) (models.Document, error)
	DeleteOwned(ctx context.Context, caller *models.AuthUser, collection, id string) error
}

type documentHandlers struct {
	ResponseHandler response.ResponseHandler
	DocumentSvc     documentService
}

func NewDocumentHandlers(deps *Deps) *documentHandlers {
	return &documentHandlers{
		ResponseHandler: deps.ResponseHandler,
		DocumentSvc:     deps.DocumentSvc,
	}
}

// AdminRoutes serves /admin/{collection}. Mount behind RequireAdmin.
func (h *documentHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{collection}", h.List)
	r.Post("/{collection}", h.Create)
	r.Get("/{collection}/{key}", h.Get)
	r.Patch("/{collection}/{key}", h.Update)
	r.Delete("/{collection}/{key}", h.Delete)
	return r
}

// RecordRoutes serves the caller's own documents.
func (h *documentHandlers) RecordRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/{collection}", h.ListOwned)
	r.Post("/{collection}", h.CreateOwned)
	r.Get("/{collection}/{key}", h.GetOwned)
	r.Delete("/{collection}/{key}", h.DeleteOwned)
	return r
}

func (h *documentHandlers) List(w http.ResponseWriter, r *http.Request) {
	params := dto.ParsePageParams(r.URL.Query())
	page, err := h.DocumentSvc.List(r.Context(), chi.URLParam(r, "collection"), params)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *documentHandlers) Get(w http.ResponseWriter, r *http.Request) {
	doc, err := h.DocumentSvc.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "key"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, doc)
}

func (h *documentHandlers) Create(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	doc, err := h.DocumentSvc.Create(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "collection"), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, doc)
}

func (h *documentHandlers) Update(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	doc, err := h.DocumentSvc.Update(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "key"), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, doc)
}

func (h *documentHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.DocumentSvc.Delete(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "key")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *documentHandlers) ListOwned(w http.ResponseWriter, r *http.Request) {
	params := dto.ParsePageParams(r.URL.Query())
	page, err := h.DocumentSvc.ListOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "collection"), params)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, page)
}

func (h *documentHandlers) GetOwned(w http.ResponseWriter, r *http.Request) {
	doc, err := h.DocumentSvc.GetOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "collection"), chi.URLParam(r, "key"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, doc)
}

func (h *documentHandlers) CreateOwned(w http.ResponseWriter, r *http.Request) {
	body, err := decodeDocument(r)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	doc, err := h.DocumentSvc.CreateOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "collection"), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, doc)
}

func (h *documentHandlers) DeleteOwned(w http.ResponseWriter, r *http.Request) {
	if err := h.DocumentSvc.DeleteOwned(r.Context(), middleware.User(r.Context()), chi.URLParam(r, "collection"), chi.URLParam(r, "key")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// decodeDocument accepts any JSON object; arrays and scalars are rejected.
// Whole numbers are kept as int64 so Firestore stores them as integers.
func decodeDocument(r *http.Request) (models.Document, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var doc models.Document
	if err := dec.Decode(&doc); err != nil || doc == nil {
		return nil, errs.NewValidationError("request body must be a JSON object")
	}
	for k, v := range doc {
		doc[k] = normalizeNumbers(v)
	}
	return doc, nil
}

func normalizeNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		for k, inner := range t {
			t[k] = normalizeNumbers(inner)
		}
		return t
	case []any:
		for i, inner := range t {
			t[i] = normalizeNumbers(inner)
		}
		return t
	default:
		return v
	}
}
