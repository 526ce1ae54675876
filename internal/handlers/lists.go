package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
	"github.com/TareSY/MyBacklog-sub000/internal/validate"
)

type ListStore interface {
	CreateList(ctx context.Context, l *models.List) error
	GetList(ctx context.Context, id string) (*models.List, error)
	GetListBySlug(ctx context.Context, slug string) (*models.List, error)
	ListSummariesByOwner(ctx context.Context, ownerID string) ([]store.ListSummary, error)
	UpdateList(ctx context.Context, listID, ownerID string, name, description *string, isPublic *bool) (*models.List, error)
	DeleteList(ctx context.Context, listID, ownerID string) error
	MintShareSlug(ctx context.Context, listID, ownerID string) (*models.List, error)
	ItemsInList(ctx context.Context, listID string) ([]models.Item, error)
}

type ListHandler struct{ Store ListStore }

func NewListHandler(s ListStore) *ListHandler { return &ListHandler{Store: s} }

// Routes is mounted under /lists. Detail is reachable by anonymous
// callers for public lists, so the group sits behind the optional auth
// middleware and each mutation checks identity itself.
func (h *ListHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.summaries)
	r.Get("/{id}", h.detail)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/share", h.share)
}

type listDetailResponse struct {
	List  *models.List  `json:"list"`
	Items []models.Item `json:"items"`
}

func (h *ListHandler) create(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		Name        string `json:"name" validate:"required,min=1,max=200"`
		Description string `json:"description" validate:"max=1000"`
		IsPublic    bool   `json:"is_public"`
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
	l := &models.List{
		OwnerID:     uid,
		Name:        strings.TrimSpace(b.Name),
		Description: b.Description,
		IsPublic:    b.IsPublic,
	}
	if err := h.Store.CreateList(r.Context(), l); err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, l)
}

func (h *ListHandler) summaries(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	out, err := h.Store.ListSummariesByOwner(r.Context(), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// detail serves a list's visible item set. Private lists are owner-only;
// public lists serve anyone including anonymous callers. The item set
// comes from the membership join, so items created through other lists
// still show up here.
func (h *ListHandler) detail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	l, err := h.Store.GetList(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !l.IsPublic && l.OwnerID != auth.UserID(r.Context()) {
		writeError(w, http.StatusForbidden, "not owned by caller")
		return
	}
	items, err := h.Store.ItemsInList(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listDetailResponse{List: l, Items: items})
}

// SharedBySlug serves GET /shared/{slug}, the unauthenticated read path
// for share links.
func (h *ListHandler) SharedBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	l, err := h.Store.GetListBySlug(r.Context(), slug)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	items, err := h.Store.ItemsInList(r.Context(), l.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, listDetailResponse{List: l, Items: items})
}

func (h *ListHandler) update(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	id := chi.URLParam(r, "id")
	type bodyT struct {
		Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
		Description *string `json:"description" validate:"omitempty,max=1000"`
		IsPublic    *bool   `json:"is_public"`
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
	l, err := h.Store.UpdateList(r.Context(), id, uid, b.Name, b.Description, b.IsPublic)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (h *ListHandler) delete(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := h.Store.DeleteList(r.Context(), chi.URLParam(r, "id"), uid); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ListHandler) share(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	l, err := h.Store.MintShareSlug(r.Context(), chi.URLParam(r, "id"), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}
