package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/middleware"
	"github.com/GregMSThompson/flowadmin/internal/response"
	"github.com/GregMSThompson/flowadmin/internal/services"
)

const uploadField = "image"

type uploadService interface {
	UploadImage(ctx context.Context, uid, filename, contentType string, size int64, r io.Reader) (dto.UploadResult, error)
}

type uploadHandlers struct {
	ResponseHandler response.ResponseHandler
	UploadSvc       uploadService
	MaxBytes        int64
}

func NewUploadHandlers(deps *Deps) *uploadHandlers {
	maxBytes := deps.MaxUploadBytes
	if maxBytes <= 0 {
		maxBytes = services.DefaultMaxUploadBytes
	}
	return &uploadHandlers{
		ResponseHandler: deps.ResponseHandler,
		UploadSvc:       deps.UploadSvc,
		MaxBytes:        maxBytes,
	}
}

func (h *uploadHandlers) UploadRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.UploadImage)
	return r
}

func (h *uploadHandlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	// leave headroom for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+1<<20)

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("image exceeds %d bytes", h.MaxBytes)))
			return
		}
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError(fmt.Sprintf("multipart field %q is required", uploadField)))
		return
	}
	defer file.Close()

	res, err := h.UploadSvc.UploadImage(r.Context(), middleware.UID(r.Context()),
		header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, res)
}
