package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/arjunv/vidtube/internal/api/middleware"
	"github.com/arjunv/vidtube/internal/api/respond"
	"github.com/arjunv/vidtube/internal/domain"
	"github.com/arjunv/vidtube/internal/service"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type UpdateAccountRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

type AttachMediaRequest struct {
	StorageKey string `json:"storageKey"`
}

func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	respond.JSON(w, http.StatusOK, user, "current user fetched successfully")
}

func (h *UserHandler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var req UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, domain.ErrInvalidInput)
		return
	}

	updated, err := h.userService.UpdateAccount(r.Context(), user.ID, service.UpdateAccountInput{
		Fullname: req.Fullname,
		Email:    req.Email,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, updated, "account details updated successfully")
}

func (h *UserHandler) AttachAvatar(w http.ResponseWriter, r *http.Request) {
	h.attachMedia(w, r, domain.MediaKindAvatar, "avatar updated successfully")
}

func (h *UserHandler) AttachCover(w http.ResponseWriter, r *http.Request) {
	h.attachMedia(w, r, domain.MediaKindCover, "cover image updated successfully")
}

func (h *UserHandler) attachMedia(w http.ResponseWriter, r *http.Request, kind domain.MediaKind, message string) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		respond.Unauthorized(w)
		return
	}

	var req AttachMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, domain.ErrInvalidInput)
		return
	}

	updated, err := h.userService.AttachMedia(r.Context(), user.ID, req.StorageKey, kind)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, updated, message)
}
