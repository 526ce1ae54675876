// Package store is the persistence layer. All business-rule failures are
// reported through the sentinel errors below so handlers can map them to
// status codes without inspecting SQL errors.
package store

import (
	"errors"

	"gorm.io/gorm"

	"github.com/TareSY/MyBacklog-sub000/internal/models"
)

var (
	// ErrNotFound: the referenced list/item/user does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner: the caller exists but does not own the target. Kept
	// distinct from ErrNotFound; list/item ownership checks do not hide
	// existence.
	ErrNotOwner = errors.New("not owned by caller")
	// ErrDuplicateTitle: case-insensitive title+category collision inside
	// the item's primary list.
	ErrDuplicateTitle = errors.New("duplicate title in primary list")
	// ErrNotFriends: no accepted friendship row in either direction.
	ErrNotFriends = errors.New("users are not friends")
	// ErrSlugTaken: share slug collided with an existing one.
	ErrSlugTaken = errors.New("share slug already taken")
	// ErrDuplicateRequest: a friendship row already exists between the
	// two users, in either direction.
	ErrDuplicateRequest = errors.New("friend request already exists")
	// ErrRequestResolved: the friend request was already accepted or
	// rejected.
	ErrRequestResolved = errors.New("friend request already resolved")
)

type Store struct{ DB *gorm.DB }

func New(db *gorm.DB) *Store { return &Store{DB: db} }

// Migrate registers the explicit membership join table and migrates the
// schema. The join struct must be wired on both sides before AutoMigrate
// or gorm would invent its own join table without added_at/position.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.List{}, "Items", &models.ItemList{}); err != nil {
		return err
	}
	if err := db.SetupJoinTable(&models.Item{}, "Lists", &models.ItemList{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&models.User{},
		&models.List{},
		&models.Item{},
		&models.Friendship{},
	)
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
