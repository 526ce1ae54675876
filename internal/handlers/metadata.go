package handlers

import (
	"context"
	"net/http"

	"github.com/TareSY/MyBacklog-sub000/internal/auth"
	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/metadata"
)

type MetadataSearcher interface {
	Search(ctx context.Context, c category.Category, query string) ([]metadata.Result, error)
}

type MetadataHandler struct{ Service MetadataSearcher }

func NewMetadataHandler(s MetadataSearcher) *MetadataHandler {
	return &MetadataHandler{Service: s}
}

// Search serves GET /metadata/search?category=movies&q=dune. The results
// are suggestions only; whatever the client copies into an item is taken
// at face value.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	if auth.UserID(r.Context()) == "" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	cat, ok := category.FromSlug(r.URL.Query().Get("category"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown category")
		return
	}
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	res, err := h.Service.Search(r.Context(), cat, q)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}
