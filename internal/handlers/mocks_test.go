package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/metadata"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
	"github.com/TareSY/MyBacklog-sub000/internal/store"
)

type mockListStore struct{ mock.Mock }

func (m *mockListStore) CreateList(ctx context.Context, l *models.List) error {
	return m.Called(ctx, l).Error(0)
}

func (m *mockListStore) GetList(ctx context.Context, id string) (*models.List, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.List), args.Error(1)
}

func (m *mockListStore) GetListBySlug(ctx context.Context, slug string) (*models.List, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.List), args.Error(1)
}

func (m *mockListStore) ListSummariesByOwner(ctx context.Context, ownerID string) ([]store.ListSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ListSummary), args.Error(1)
}

func (m *mockListStore) UpdateList(ctx context.Context, listID, ownerID string, name, description *string, isPublic *bool) (*models.List, error) {
	args := m.Called(ctx, listID, ownerID, name, description, isPublic)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.List), args.Error(1)
}

func (m *mockListStore) DeleteList(ctx context.Context, listID, ownerID string) error {
	return m.Called(ctx, listID, ownerID).Error(0)
}

func (m *mockListStore) MintShareSlug(ctx context.Context, listID, ownerID string) (*models.List, error) {
	args := m.Called(ctx, listID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.List), args.Error(1)
}

func (m *mockListStore) ItemsInList(ctx context.Context, listID string) ([]models.Item, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

type mockItemStore struct{ mock.Mock }

func (m *mockItemStore) CreateItem(ctx context.Context, ownerID string, item *models.Item, listIDs []string) (*models.Item, error) {
	args := m.Called(ctx, ownerID, item, listIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemStore) UpdateItem(ctx context.Context, itemID, ownerID string, patch store.ItemPatch) (*models.Item, error) {
	args := m.Called(ctx, itemID, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *mockItemStore) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	return m.Called(ctx, itemID, ownerID).Error(0)
}

func (m *mockItemStore) AttachItem(ctx context.Context, itemID, ownerID string, listIDs []string) error {
	return m.Called(ctx, itemID, ownerID, listIDs).Error(0)
}

func (m *mockItemStore) DetachItem(ctx context.Context, itemID, listID, ownerID string) error {
	return m.Called(ctx, itemID, listID, ownerID).Error(0)
}

type mockFriendStore struct{ mock.Mock }

func (m *mockFriendStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockFriendStore) CreateFriendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error) {
	args := m.Called(ctx, requesterID, addresseeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *mockFriendStore) RespondToFriendRequest(ctx context.Context, requestID, addresseeID string, status models.FriendshipStatus) (*models.Friendship, error) {
	args := m.Called(ctx, requestID, addresseeID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *mockFriendStore) AreFriends(ctx context.Context, a, b string) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *mockFriendStore) Friends(ctx context.Context, userID string) ([]models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *mockFriendStore) PendingRequests(ctx context.Context, userID string) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *mockFriendStore) TitlesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]string, error) {
	args := m.Called(ctx, ownerID, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockFriendStore) TitleEntriesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]store.TitleEntry, error) {
	args := m.Called(ctx, ownerID, publicOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.TitleEntry), args.Error(1)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) CreateUser(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, id string, displayName, avatarURL *string) (*models.User, error) {
	args := m.Called(ctx, id, displayName, avatarURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type mockMetadataSearcher struct{ mock.Mock }

func (m *mockMetadataSearcher) Search(ctx context.Context, c category.Category, query string) ([]metadata.Result, error) {
	args := m.Called(ctx, c, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]metadata.Result), args.Error(1)
}
