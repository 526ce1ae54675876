package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email        string `gorm:"uniqueIndex" json:"email"`
	Username     string `gorm:"uniqueIndex" json:"username"`
	DisplayName  string `json:"display_name"`
	AvatarURL    string `json:"avatar_url"`
	PasswordHash string `json:"-"`

	Lists []List `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"lists,omitempty"`
}

type List struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerID     string  `gorm:"type:uuid;index" json:"owner_id"`
	Name        string  `gorm:"not null" json:"name"`
	Description string  `json:"description"`
	IsPublic    bool    `gorm:"default:false" json:"is_public"`
	ShareSlug   *string `gorm:"uniqueIndex" json:"share_slug,omitempty"`

	// Items visible in this list, resolved through the item_lists join.
	// Never read through Item.PrimaryListID: an item attached to several
	// lists has one primary list but must show up in all of them.
	Items []*Item `gorm:"many2many:item_lists;" json:"items,omitempty"`
}

type Item struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// The list this item was created through. Ownership and duplicate
	// checks are scoped to this list only.
	PrimaryListID string `gorm:"type:uuid;index" json:"primary_list_id"`
	CategoryID    int    `gorm:"index" json:"category_id"`

	Title       string `gorm:"not null" json:"title"`
	Subtitle    string `json:"subtitle"`
	ExternalID  string `json:"external_id"`
	ImageURL    string `json:"image_url"`
	ReleaseYear int    `json:"release_year"`
	Description string `json:"description"`

	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Notes       string     `json:"notes"`
	Rating      int        `gorm:"default:0" json:"rating"`

	// Category-specific fields.
	Platform string `json:"platform,omitempty"` // games only
	Subtype  string `json:"subtype,omitempty"`  // music only: album|song

	Lists []*List `gorm:"many2many:item_lists;" json:"-"`
}

// ItemList is the membership join between an Item and a List. It is the
// authoritative answer to "what is in list L"; Item.PrimaryListID is not.
// A given (item, list) pair appears at most once.
type ItemList struct {
	ItemID   string    `gorm:"type:uuid;primaryKey" json:"item_id"`
	ListID   string    `gorm:"type:uuid;primaryKey" json:"list_id"`
	AddedAt  time.Time `json:"added_at"`
	Position int       `gorm:"default:0" json:"position"`
}

func (il *ItemList) BeforeCreate(db *gorm.DB) error {
	if il.AddedAt.IsZero() {
		il.AddedAt = time.Now()
	}
	return nil
}

type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	FriendshipRejected FriendshipStatus = "rejected"
)

// Friendship is a directed request from Requester to Addressee. Visibility
// checks treat an accepted row as symmetric.
type Friendship struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	RequesterID string           `gorm:"type:uuid;index;not null" json:"requester_id"`
	AddresseeID string           `gorm:"type:uuid;index;not null" json:"addressee_id"`
	Status      FriendshipStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Addressee User `gorm:"foreignKey:AddresseeID" json:"addressee,omitempty"`
}
