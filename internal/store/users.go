package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/TareSY/MyBacklog-sub000/internal/models"
)

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		return errors.Wrap(err, "create user")
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.DB.WithContext(ctx).First(&u, "username = ?", username).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// UpdateProfile mutates the profile-settings fields only. Identity and
// credential fields have their own paths.
func (s *Store) UpdateProfile(ctx context.Context, id string, displayName, avatarURL *string) (*models.User, error) {
	u, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if displayName != nil {
		updates["display_name"] = *displayName
	}
	if avatarURL != nil {
		updates["avatar_url"] = *avatarURL
	}
	if len(updates) == 0 {
		return u, nil
	}
	if err := s.DB.WithContext(ctx).Model(u).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	return u, nil
}
