package handlers

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/internal/validation"
	"github.com/GregMSThompson/flowadmin/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = map[string]*template.Template{
	"compliance":   parsePage("templates/compliance.html"),
	"removal_form": parsePage("templates/removal_form.html"),
	"removal_done": parsePage("templates/removal_done.html"),
}

func parsePage(content string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/layout.html", content))
}

type webpageService interface {
	TermsAndConditions(ctx context.Context) (string, error)
	PrivacyPolicy(ctx context.Context) (string, error)
	SubmitRemovalRequest(ctx context.Context, form dto.DataRemovalForm) (*models.DataRemovalRequest, error)
}

type pageData struct {
	Title string
	Body  template.HTML
	Form  dto.DataRemovalForm
	Error string
}

type webpageHandlers struct {
	ResponseHandler response.ResponseHandler
	WebpageSvc      webpageService
}

func NewWebpageHandlers(deps *Deps) *webpageHandlers {
	return &webpageHandlers{
		ResponseHandler: deps.ResponseHandler,
		WebpageSvc:      deps.WebpageSvc,
	}
}

func (h *webpageHandlers) WebpageRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/terms-and-conditions", h.TermsAndConditions)
	r.Get("/privacy-policy", h.PrivacyPolicy)
	r.Get("/data-removal-request", h.DataRemovalForm)
	r.Post("/data-removal-request", h.SubmitDataRemovalRequest)
	return r
}

func (h *webpageHandlers) TermsAndConditions(w http.ResponseWriter, r *http.Request) {
	h.compliance(w, r, "Terms and Conditions", h.WebpageSvc.TermsAndConditions)
}

func (h *webpageHandlers) PrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	h.compliance(w, r, "Privacy Policy", h.WebpageSvc.PrivacyPolicy)
}

func (h *webpageHandlers) compliance(w http.ResponseWriter, r *http.Request, title string, load func(context.Context) (string, error)) {
	body, err := load(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	// compliance HTML is authored by admins in the compliance table
	h.render(w, r, http.StatusOK, "compliance", pageData{Title: title, Body: template.HTML(body)})
}

func (h *webpageHandlers) DataRemovalForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "removal_form", pageData{Title: "Data Removal Request"})
}

func (h *webpageHandlers) SubmitDataRemovalRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("invalid form submission"))
		return
	}
	form := dto.DataRemovalForm{
		Name:    r.PostForm.Get("name"),
		Email:   r.PostForm.Get("email"),
		Message: r.PostForm.Get("message"),
	}
	data := pageData{Title: "Data Removal Request", Form: form}

	if err := validation.Struct(form); err != nil {
		data.Error = err.Error()
		h.render(w, r, http.StatusBadRequest, "removal_form", data)
		return
	}
	if _, err := h.WebpageSvc.SubmitRemovalRequest(r.Context(), form); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	data.Title = "Request Received"
	h.render(w, r, http.StatusOK, "removal_done", data)
}

func (h *webpageHandlers) render(w http.ResponseWriter, r *http.Request, status int, page string, data pageData) {
	var buf bytes.Buffer
	if err := pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(r.Context()).Error("failed to render page", "page", page, "error", err)
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
