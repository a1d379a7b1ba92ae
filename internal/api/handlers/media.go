package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arjunv/vidtube/internal/api/middleware"
	"github.com/arjunv/vidtube/internal/api/respond"
	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/service"
)

type MediaHandler struct {
	mediaService *service.MediaService
}

func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

type RequestUploadRequest struct {
	Kind        string `json:"kind"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"sizeBytes"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

func (h *MediaHandler) RequestUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var req RequestUploadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, domain.ErrInvalidInput)
		return
	}

	grant, err := h.mediaService.RequestUpload(r.Context(), user.ID, domain.MediaKind(req.Kind), service.UploadMetadata{
		ContentType: req.ContentType,
		Filename:    req.Filename,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, grant, "upload URL issued")
}

func (h *MediaHandler) ListUploads(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	records, err := h.mediaService.ListUploads(r.Context(), user.ID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, records, "uploads fetched")
}

func (h *MediaHandler) DownloadURL(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		respond.Error(w, r, domain.ErrMissingFields)
		return
	}

	url, err := h.mediaService.DownloadURL(r.Context(), user.ID, key)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, DownloadURLResponse{URL: url}, "download URL issued")
}
