// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"
	"io"
	"net/http"

	"github.com/UnendingLoop/UploadServer/internal/model"
	"github.com/UnendingLoop/UploadServer/internal/params"
	"github.com/UnendingLoop/UploadServer/internal/router"
)

type ImageService interface {
	ParseUpload(contentType string, body io.Reader) (*model.IncomingFile, error)
	Upload(ctx context.Context, file *model.IncomingFile) (*model.Image, error)
	Delete(ctx context.Context, filename string) error
	GetList(ctx context.Context, pg params.Pagination, srt params.Sort) (*model.Listing, error)
}

type ImageHandler struct {
	service ImageService
}

func NewImageHandler(svc ImageService) *ImageHandler {
	return &ImageHandler{
		service: svc,
	}
}

func (h *ImageHandler) Root(w http.ResponseWriter, r *http.Request, m router.Match) {
	sendJSON(w, 200, map[string]string{"message": "Welcome to the Upload Server"})
}

func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request, m router.Match) {
	pg, err := params.ParsePagination(m.QueryParams)
	if err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	srt, err := params.ParseSort(m.QueryParams)
	if err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	listing, err := h.service.GetList(r.Context(), pg, srt)
	if err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	sendJSON(w, 200, listing)
}

func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request, m router.Match) {
	file, err := h.service.ParseUpload(r.Header.Get("Content-Type"), r.Body)
	if err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	img, err := h.service.Upload(r.Context(), file)
	if err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	storedName := img.Filename + img.FileType
	sendJSON(w, 200, map[string]string{
		"filename": storedName,
		"url":      "/images/" + storedName,
	})
}

func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request, m router.Match) {
	filename := m.PathParams["filename"]
	if filename == "" {
		sendJSONError(w, r, 400, "Filename not provided.")
		return
	}

	if err := h.service.Delete(r.Context(), filename); err != nil {
		sendJSONError(w, r, errorCodeDefiner(err), err.Error())
		return
	}

	sendJSON(w, 200, map[string]string{"message": "File '" + filename + "' deleted successfully."})
}
