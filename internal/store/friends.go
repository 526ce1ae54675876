package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/TareSY/MyBacklog-sub000/internal/models"
)

// CreateFriendRequest opens a pending request toward the addressee. An
// existing row in either direction, whatever its status, blocks a new one.
func (s *Store) CreateFriendRequest(ctx context.Context, requesterID, addresseeID string) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, errors.New("cannot befriend yourself")
	}
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			requesterID, addresseeID, addresseeID, requesterID).
		Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "check existing friendship")
	}
	if count > 0 {
		return nil, ErrDuplicateRequest
	}
	f := &models.Friendship{
		ID:          uuid.NewString(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipPending,
	}
	if err := s.DB.WithContext(ctx).Create(f).Error; err != nil {
		return nil, errors.Wrap(err, "create friend request")
	}
	return f, nil
}

// RespondToFriendRequest accepts or rejects a pending request. Only the
// addressee may respond.
func (s *Store) RespondToFriendRequest(ctx context.Context, requestID, addresseeID string, status models.FriendshipStatus) (*models.Friendship, error) {
	var f models.Friendship
	if err := s.DB.WithContext(ctx).First(&f, "id = ?", requestID).Error; err != nil {
		return nil, translate(err)
	}
	if f.AddresseeID != addresseeID {
		return nil, ErrNotOwner
	}
	if f.Status != models.FriendshipPending {
		return nil, ErrRequestResolved
	}
	if err := s.DB.WithContext(ctx).Model(&f).Update("status", status).Error; err != nil {
		return nil, errors.Wrap(err, "respond to friend request")
	}
	return &f, nil
}

// AreFriends reports an accepted friendship in either direction. The
// requester/addressee roles do not matter once accepted.
func (s *Store) AreFriends(ctx context.Context, a, b string) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Friendship{}).
		Where("status = ?", models.FriendshipAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check friendship")
	}
	return count > 0, nil
}

// Friends returns the accepted counterparts of the given user.
func (s *Store) Friends(ctx context.Context, userID string) ([]models.User, error) {
	var rows []models.Friendship
	err := s.DB.WithContext(ctx).
		Where("status = ?", models.FriendshipAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "load friendships")
	}
	ids := make([]string, 0, len(rows))
	for _, f := range rows {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "load friends")
	}
	return users, nil
}

// PendingRequests returns incoming requests awaiting the user's answer,
// requester preloaded for display.
func (s *Store) PendingRequests(ctx context.Context, userID string) ([]models.Friendship, error) {
	var rows []models.Friendship
	err := s.DB.WithContext(ctx).
		Preload("Requester").
		Where("addressee_id = ? AND status = ?", userID, models.FriendshipPending).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "pending requests")
	}
	return rows, nil
}
