package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
	"github.com/TareSY/MyBacklog-sub000/internal/validate"
)

type ItemStore interface {
	CreateItem(ctx context.Context, ownerID string, item *models.Item, listIDs []string) (*models.Item, error)
	UpdateItem(ctx context.Context, itemID, ownerID string, patch store.ItemPatch) (*models.Item, error)
	DeleteItem(ctx context.Context, itemID, ownerID string) error
	AttachItem(ctx context.Context, itemID, ownerID string, listIDs []string) error
	DetachItem(ctx context.Context, itemID, listID, ownerID string) error
}

type ItemHandler struct{ Store ItemStore }

func NewItemHandler(s ItemStore) *ItemHandler { return &ItemHandler{Store: s} }

// Routes is mounted under /items behind the auth middleware.
func (h *ItemHandler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/lists", h.attach)
	r.Delete("/{id}/lists/{listID}", h.detach)
}

func (h *ItemHandler) create(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		ListIDs     []string `json:"list_ids" validate:"required,min=1,dive,required"`
		Category    int      `json:"category" validate:"required"`
		Title       string   `json:"title" validate:"required,max=500"`
		Subtitle    string   `json:"subtitle" validate:"max=500"`
		ExternalID  string   `json:"external_id" validate:"max=200"`
		ImageURL    string   `json:"image_url" validate:"max=1000"`
		ReleaseYear int      `json:"release_year" validate:"omitempty,gte=0,lte=3000"`
		Description string   `json:"description" validate:"max=5000"`
		Notes       string   `json:"notes" validate:"max=5000"`
		Rating      int      `json:"rating"`
		Platform    string   `json:"platform" validate:"max=100"`
		Subtype     string   `json:"subtype" validate:"max=20"`
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

	cat := category.Category(b.Category)
	fields := category.Fields{
		Title:    b.Title,
		Subtitle: b.Subtitle,
		Platform: b.Platform,
		Subtype:  b.Subtype,
		Rating:   b.Rating,
	}
	category.Normalize(cat, &fields)
	if field, msg, ok := category.Validate(cat, fields); !ok {
		writeJSON(w, http.StatusBadRequest, map[string]string{field: msg})
		return
	}
	fields.Subtype = category.DefaultSubtype(cat, fields.Subtype)

	item := &models.Item{
		CategoryID:  int(cat),
		Title:       fields.Title,
		Subtitle:    fields.Subtitle,
		ExternalID:  b.ExternalID,
		ImageURL:    b.ImageURL,
		ReleaseYear: b.ReleaseYear,
		Description: b.Description,
		Notes:       b.Notes,
		Rating:      fields.Rating,
		Platform:    fields.Platform,
		Subtype:     fields.Subtype,
	}
	created, err := h.Store.CreateItem(r.Context(), uid, item, b.ListIDs)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ItemHandler) update(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		IsCompleted *bool   `json:"is_completed"`
		Notes       *string `json:"notes" validate:"omitempty,max=5000"`
		Rating      *int    `json:"rating" validate:"omitempty,gte=0,lte=10"`
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
	patch := store.ItemPatch{IsCompleted: b.IsCompleted, Notes: b.Notes, Rating: b.Rating}
	it, err := h.Store.UpdateItem(r.Context(), chi.URLParam(r, "id"), uid, patch)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) delete(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	if err := h.Store.DeleteItem(r.Context(), chi.URLParam(r, "id"), uid); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// attach adds the item to more lists. Re-attaching an existing membership
// is a no-op, so the endpoint always answers 204 on authorized input.
func (h *ItemHandler) attach(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		ListIDs []string `json:"list_ids" validate:"required,min=1,dive,required"`
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
	if err := h.Store.AttachItem(r.Context(), chi.URLParam(r, "id"), uid, b.ListIDs); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ItemHandler) detach(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	err := h.Store.DetachItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "listID"), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
