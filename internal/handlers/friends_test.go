package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TareSY/MyBacklog-sub000/internal/compare"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
)

func newFriendRouter(s FriendStore) *chi.Mux {
	h := NewFriendHandler(s)
	r := chi.NewRouter()
	r.Route("/friends", h.Routes)
	r.Get("/recommendations", h.Recommendations)
	return r
}

func TestComparisonNotFriends(t *testing.T) {
	s := new(mockFriendStore)
	s.On("AreFriends", mock.Anything, "carol", "alice").Return(false, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/friends/alice/comparison", "carol", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not friends", body["error"])
	s.AssertNotCalled(t, "TitlesByOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestComparisonBuckets(t *testing.T) {
	s := new(mockFriendStore)
	s.On("AreFriends", mock.Anything, "alice", "bob").Return(true, nil)
	// Caller's side spans all own lists; target's side only public lists.
	s.On("TitlesByOwner", mock.Anything, "alice", false).Return([]string{"Dune", "1984"}, nil)
	s.On("TitlesByOwner", mock.Anything, "bob", true).Return([]string{"1984", "Foundation"}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/friends/bob/comparison", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res compare.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, []string{"1984"}, res.Common)
	assert.Equal(t, []string{"Dune"}, res.OnlyCaller)
	assert.Equal(t, []string{"Foundation"}, res.OnlyTarget)
	s.AssertExpectations(t)
}

func TestComparisonPrivateListsContributeNothing(t *testing.T) {
	s := new(mockFriendStore)
	s.On("AreFriends", mock.Anything, "alice", "bob").Return(true, nil)
	s.On("TitlesByOwner", mock.Anything, "alice", false).Return([]string{"Dune", "1984"}, nil)
	// Bob flipped his list private: the public-only collection is empty.
	s.On("TitlesByOwner", mock.Anything, "bob", true).Return([]string{}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/friends/bob/comparison", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var res compare.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Common)
	assert.Empty(t, res.OnlyTarget)
	assert.Equal(t, 2, res.OnlyCallerCount)
}

func TestFriendRequestFlow(t *testing.T) {
	s := new(mockFriendStore)
	s.On("GetUserByUsername", mock.Anything, "bob").Return(&models.User{ID: "u-bob", Username: "bob"}, nil)
	s.On("CreateFriendRequest", mock.Anything, "alice", "u-bob").
		Return(&models.Friendship{ID: "f1", RequesterID: "alice", AddresseeID: "u-bob", Status: models.FriendshipPending}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodPost, "/friends/requests", "alice", map[string]any{"username": "bob"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var f models.Friendship
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, models.FriendshipPending, f.Status)
}

func TestFriendRequestUnknownUser(t *testing.T) {
	s := new(mockFriendStore)
	s.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, store.ErrNotFound)

	rec := doRequest(t, newFriendRouter(s), http.MethodPost, "/friends/requests", "alice", map[string]any{"username": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFriendRequestSelf(t *testing.T) {
	s := new(mockFriendStore)
	s.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{ID: "alice", Username: "alice"}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodPost, "/friends/requests", "alice", map[string]any{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	s.AssertNotCalled(t, "CreateFriendRequest", mock.Anything, mock.Anything, mock.Anything)
}

func TestAcceptRequestAddresseeOnly(t *testing.T) {
	s := new(mockFriendStore)
	s.On("RespondToFriendRequest", mock.Anything, "f1", "mallory", models.FriendshipAccepted).
		Return(nil, store.ErrNotOwner)

	rec := doRequest(t, newFriendRouter(s), http.MethodPost, "/friends/requests/f1/accept", "mallory", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRejectRequest(t *testing.T) {
	s := new(mockFriendStore)
	s.On("RespondToFriendRequest", mock.Anything, "f1", "bob", models.FriendshipRejected).
		Return(&models.Friendship{ID: "f1", Status: models.FriendshipRejected}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodPost, "/friends/requests/f1/reject", "bob", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var f models.Friendship
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, models.FriendshipRejected, f.Status)
}

func TestRecommendations(t *testing.T) {
	s := new(mockFriendStore)
	s.On("Friends", mock.Anything, "alice").Return([]models.User{{ID: "u-bob"}}, nil)
	s.On("TitleEntriesByOwner", mock.Anything, "alice", false).
		Return([]store.TitleEntry{{Title: "Dune", CategoryID: 3}}, nil)
	s.On("TitleEntriesByOwner", mock.Anything, "u-bob", true).
		Return([]store.TitleEntry{
			{Title: "Dune", CategoryID: 3},
			{Title: "Foundation", CategoryID: 3},
		}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/recommendations", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, []string{"Foundation"}, out["recommendations"]["books"])
}

func TestRecommendationsGroupedByCategory(t *testing.T) {
	s := new(mockFriendStore)
	s.On("Friends", mock.Anything, "alice").Return([]models.User{{ID: "u-bob"}}, nil)
	s.On("TitleEntriesByOwner", mock.Anything, "alice", false).
		Return([]store.TitleEntry{}, nil)
	s.On("TitleEntriesByOwner", mock.Anything, "u-bob", true).
		Return([]store.TitleEntry{
			{Title: "Dune", CategoryID: 1},
			{Title: "Hades", CategoryID: 5},
		}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/recommendations", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	buckets := out["recommendations"]
	assert.Equal(t, []string{"Dune"}, buckets["movies"])
	assert.Equal(t, []string{"Hades"}, buckets["games"])
}

func TestRecommendationsOwnedTitleBlocksSameCategoryOnly(t *testing.T) {
	s := new(mockFriendStore)
	s.On("Friends", mock.Anything, "alice").Return([]models.User{{ID: "u-bob"}}, nil)
	// Alice has the book; the friend keeps the film adaptation public.
	s.On("TitleEntriesByOwner", mock.Anything, "alice", false).
		Return([]store.TitleEntry{{Title: "Dune", CategoryID: 3}}, nil)
	s.On("TitleEntriesByOwner", mock.Anything, "u-bob", true).
		Return([]store.TitleEntry{
			{Title: "Dune", CategoryID: 1},
			{Title: "Dune", CategoryID: 3},
		}, nil)

	rec := doRequest(t, newFriendRouter(s), http.MethodGet, "/recommendations", "alice", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out map[string]map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	buckets := out["recommendations"]
	assert.Equal(t, []string{"Dune"}, buckets["movies"])
	assert.NotContains(t, buckets, "books")
}
