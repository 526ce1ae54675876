package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/compare"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
	"github.com/TareSY/MyBacklog-sub000/internal/validate"
)

type FriendStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateFriendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error)
	RespondToFriendRequest(ctx context.Context, requestID, addresseeID string, status models.FriendshipStatus) (*models.Friendship, error)
	AreFriends(ctx context.Context, a, b string) (bool, error)
	Friends(ctx context.Context, userID string) ([]models.User, error)
	PendingRequests(ctx context.Context, userID string) ([]models.Friendship, error)
	TitlesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]string, error)
	TitleEntriesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]store.TitleEntry, error)
}

type FriendHandler struct{ Store FriendStore }

func NewFriendHandler(s FriendStore) *FriendHandler { return &FriendHandler{Store: s} }

// Routes is mounted under /friends behind the auth middleware.
func (h *FriendHandler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/requests", h.request)
	r.Get("/requests", h.pending)
	r.Post("/requests/{id}/accept", h.accept)
	r.Post("/requests/{id}/reject", h.reject)
	r.Get("/{userID}/comparison", h.comparison)
}

func (h *FriendHandler) list(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	users, err := h.Store.Friends(r.Context(), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *FriendHandler) request(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	type bodyT struct {
		Username string `json:"username" validate:"required"`
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
	target, err := h.Store.GetUserByUsername(r.Context(), strings.TrimSpace(b.Username))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if target.ID == uid {
		writeError(w, http.StatusBadRequest, "cannot befriend yourself")
		return
	}
	f, err := h.Store.CreateFriendRequest(r.Context(), uid, target.ID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (h *FriendHandler) pending(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	rows, err := h.Store.PendingRequests(r.Context(), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (h *FriendHandler) accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, models.FriendshipAccepted)
}

func (h *FriendHandler) reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, models.FriendshipRejected)
}

func (h *FriendHandler) respond(w http.ResponseWriter, r *http.Request, status models.FriendshipStatus) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	f, err := h.Store.RespondToFriendRequest(r.Context(), chi.URLParam(r, "id"), uid, status)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// comparison computes the backlog overlap with an accepted friend. The
// caller's side spans all of their own lists; the friend's side only the
// lists they made public. A private list stops contributing the moment
// it is flipped private, since titles are re-collected per call.
func (h *FriendHandler) comparison(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	targetID := chi.URLParam(r, "userID")
	ok, err := h.Store.AreFriends(r.Context(), uid, targetID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	if !ok {
		writeStoreError(w, store.ErrNotFriends)
		return
	}
	callerTitles, err := h.Store.TitlesByOwner(r.Context(), uid, false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	targetTitles, err := h.Store.TitlesByOwner(r.Context(), targetID, true)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compare.Backlogs(callerTitles, targetTitles))
}

// Recommendations serves GET /recommendations: titles the caller's
// friends keep in public lists that the caller does not have yet,
// grouped by category slug and capped per group. Having a title in one
// category does not suppress the same title in another.
func (h *FriendHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	uid := auth.UserID(r.Context())
	if uid == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	friends, err := h.Store.Friends(r.Context(), uid)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	mineEntries, err := h.Store.TitleEntriesByOwner(r.Context(), uid, false)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	mine := make(map[int][]string)
	for _, e := range mineEntries {
		mine[e.CategoryID] = append(mine[e.CategoryID], e.Title)
	}
	theirs := make(map[int][]string)
	for _, f := range friends {
		entries, err := h.Store.TitleEntriesByOwner(r.Context(), f.ID, true)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		for _, e := range entries {
			theirs[e.CategoryID] = append(theirs[e.CategoryID], e.Title)
		}
	}
	out := make(map[string][]string)
	for catID, titles := range theirs {
		missing := compare.Missing(mine[catID], titles)
		if len(missing) > compare.SampleCap {
			missing = missing[:compare.SampleCap]
		}
		if len(missing) > 0 {
			out[category.Category(catID).Slug()] = missing
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"recommendations": out})
}
