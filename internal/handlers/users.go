package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/validate"
)

type UserHandler struct{ Store UserStore }

func NewUserHandler(s UserStore) *UserHandler { return &UserHandler{Store: s} }

func (h *UserHandler) Routes(r chi.Router) {
	r.Get("/", h.me)
	r.Patch("/", h.patchMe)
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	u, err := h.Store.GetUser(r.Context(), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (h *UserHandler) patchMe(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		DisplayName *string `json:"display_name" validate:"omitempty,min=1,max=100"`
		AvatarURL   *string `json:"avatar_url" validate:"omitempty,max=500"`
	}
	var b bodyT
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if errs := validate.Map(b); errs != nil {
		writeJSON(w, http.StatusBadRequest, errs)
		return
	}
	u, err := h.Store.UpdateProfile(r.Context(), uid, b.DisplayName, b.AvatarURL)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}
