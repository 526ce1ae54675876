package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
	"github.com/TareSY/MyBacklog-sub000/internal/validate"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, displayName, avatarURL *string) (*models.User, error)
}

type AuthHandler struct {
	Store  UserStore
	Tokens *auth.Tokens
}

func NewAuthHandler(s UserStore, t *auth.Tokens) *AuthHandler {
	return &AuthHandler{Store: s, Tokens: t}
}

// Routes is mounted under /auth, unauthenticated.
func (h *AuthHandler) Routes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
}

type sessionResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	type bodyT struct {
		Email       string `json:"email" validate:"required,email"`
		Username    string `json:"username" validate:"required,min=3,max=40"`
		DisplayName string `json:"display_name" validate:"max=100"`
		Password    string `json:"password" validate:"required,min=8,max=128"`
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
	hash, err := auth.HashPassword(b.Password)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(b.Email)),
		Username:     strings.TrimSpace(b.Username),
		DisplayName:  strings.TrimSpace(b.DisplayName),
		PasswordHash: hash,
	}
	if u.DisplayName == "" {
		u.DisplayName = u.Username
	}
	if err := h.Store.CreateUser(r.Context(), u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			writeError(w, http.StatusConflict, "email or username already taken")
			return
		}
		writeStoreError(w, err)
		return
	}
	token, err := h.Tokens.Issue(u.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{Token: token, User: u})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	type bodyT struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
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
	u, err := h.Store.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(b.Email)))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeStoreError(w, err)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, b.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	token, err := h.Tokens.Issue(u.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Token: token, User: u})
}
