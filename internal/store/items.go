package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TareSY/MyBacklog-sub000/internal/models"
)

// CreateItem inserts one item row plus one membership row per target
// list. The first id in listIDs becomes the item's primary list. The
// duplicate check (case-insensitive title within the same category) is
// scoped to the primary list only: the same title may live in two
// different lists, either as two item rows or as two memberships.
func (s *Store) CreateItem(ctx context.Context, ownerID string, item *models.Item, listIDs []string) (*models.Item, error) {
	if len(listIDs) == 0 {
		return nil, errors.New("at least one target list required")
	}
	if err := s.ensureListsOwned(ctx, listIDs, ownerID); err != nil {
		return nil, err
	}
	item.PrimaryListID = listIDs[0]

	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Item{}).
		Where("primary_list_id = ? AND category_id = ? AND LOWER(title) = LOWER(?)",
			item.PrimaryListID, item.CategoryID, item.Title).
		Count(&count).Error
	if err != nil {
		return nil, errors.Wrap(err, "duplicate check")
	}
	if count > 0 {
		return nil, ErrDuplicateTitle
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(item).Error; err != nil {
			return errors.Wrap(err, "create item")
		}
		return s.attach(tx, item.ID, dedupe(listIDs))
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Store) GetItem(ctx context.Context, id string) (*models.Item, error) {
	var it models.Item
	if err := s.DB.WithContext(ctx).First(&it, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &it, nil
}

// ensureItemOwner gates mutations: the caller must own the list the item
// was created through. The lookup is Unscoped so ownership survives the
// primary list being deleted; the item may still live in other lists and
// its creator keeps the right to patch or remove it. Missing item stays
// distinct from foreign item.
func (s *Store) ensureItemOwner(ctx context.Context, itemID, ownerID string) (*models.Item, error) {
	it, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	var l models.List
	err = s.DB.WithContext(ctx).Unscoped().
		Select("owner_id").
		First(&l, "id = ?", it.PrimaryListID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, errors.Wrap(err, "check item owner")
	}
	if l.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return it, nil
}

// ItemPatch carries the mutable item fields; nil means leave unchanged.
type ItemPatch struct {
	IsCompleted *bool
	Notes       *string
	Rating      *int
}

// UpdateItem applies completion/notes/rating changes. Toggling completion
// sets or clears the completion timestamp alongside the flag.
func (s *Store) UpdateItem(ctx context.Context, itemID, ownerID string, patch ItemPatch) (*models.Item, error) {
	it, err := s.ensureItemOwner(ctx, itemID, ownerID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if patch.IsCompleted != nil {
		updates["is_completed"] = *patch.IsCompleted
		if *patch.IsCompleted {
			now := time.Now()
			updates["completed_at"] = &now
		} else {
			updates["completed_at"] = gorm.Expr("NULL")
		}
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if len(updates) == 0 {
		return it, nil
	}
	if err := s.DB.WithContext(ctx).Model(it).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update item")
	}
	// Map updates (and the NULL expression in particular) are not written
	// back into the struct; reload so callers see the row as stored.
	return s.GetItem(ctx, itemID)
}

// DeleteItem removes the item and all of its memberships, whichever lists
// they point at.
func (s *Store) DeleteItem(ctx context.Context, itemID, ownerID string) error {
	if _, err := s.ensureItemOwner(ctx, itemID, ownerID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", itemID).Delete(&models.ItemList{}).Error; err != nil {
			return errors.Wrap(err, "delete memberships")
		}
		if err := tx.Delete(&models.Item{}, "id = ?", itemID).Error; err != nil {
			return errors.Wrap(err, "delete item")
		}
		return nil
	})
}

// AttachItem adds memberships for the item in every target list. The
// caller must own the item and all targets. Pairs that already exist are
// skipped, not errored on, so a repeated attach leaves exactly one row.
func (s *Store) AttachItem(ctx context.Context, itemID, ownerID string, listIDs []string) error {
	if len(listIDs) == 0 {
		return nil
	}
	if _, err := s.ensureItemOwner(ctx, itemID, ownerID); err != nil {
		return err
	}
	if err := s.ensureListsOwned(ctx, listIDs, ownerID); err != nil {
		return err
	}
	return s.attach(s.DB.WithContext(ctx), itemID, dedupe(listIDs))
}

// attach inserts one membership row per list, relying on the composite
// primary key plus ON CONFLICT DO NOTHING for idempotency. Position is
// appended per list, moodle style: MAX(position)+1.
func (s *Store) attach(tx *gorm.DB, itemID string, listIDs []string) error {
	for _, listID := range listIDs {
		var pos int
		err := tx.Model(&models.ItemList{}).
			Where("list_id = ?", listID).
			Select("COALESCE(MAX(position), -1)+1").
			Scan(&pos).Error
		if err != nil {
			return errors.Wrap(err, "next position")
		}
		row := models.ItemList{ItemID: itemID, ListID: listID, Position: pos, AddedAt: time.Now()}
		err = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "item_id"}, {Name: "list_id"}},
			DoNothing: true,
		}).Create(&row).Error
		if err != nil {
			return errors.Wrap(err, "attach item")
		}
	}
	return nil
}

// DetachItem removes a single (item, list) membership. Only the list's
// owner may detach; the item's primary list is irrelevant here.
func (s *Store) DetachItem(ctx context.Context, itemID, listID, ownerID string) error {
	if _, err := s.EnsureListOwner(ctx, listID, ownerID); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).
		Where("item_id = ? AND list_id = ?", itemID, listID).
		Delete(&models.ItemList{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "detach item")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ItemsInList resolves a list's visible item set through the membership
// join. Filtering on items.primary_list_id here would drop items attached
// from other lists; the join table is the authority. Ordering is position,
// then membership added_at, then item created_at for a stable
// insertion-order tie-break.
func (s *Store) ItemsInList(ctx context.Context, listID string) ([]models.Item, error) {
	var items []models.Item
	err := s.DB.WithContext(ctx).Model(&models.Item{}).
		Joins("JOIN item_lists ON item_lists.item_id = items.id").
		Where("item_lists.list_id = ?", listID).
		Order("item_lists.position ASC, item_lists.added_at ASC, items.created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "items in list")
	}
	return items, nil
}

// TitlesByOwner collects the distinct titles visible across a user's
// lists via memberships. With publicOnly set, private lists contribute
// nothing, which is how a friend's side of a comparison is gathered.
func (s *Store) TitlesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]string, error) {
	q := s.DB.WithContext(ctx).Model(&models.Item{}).
		Distinct().
		Joins("JOIN item_lists ON item_lists.item_id = items.id").
		Joins("JOIN lists ON lists.id = item_lists.list_id").
		Where("lists.owner_id = ? AND lists.deleted_at IS NULL", ownerID)
	if publicOnly {
		q = q.Where("lists.is_public = TRUE")
	}
	var titles []string
	if err := q.Pluck("items.title", &titles).Error; err != nil {
		return nil, errors.Wrap(err, "titles by owner")
	}
	return titles, nil
}

// TitleEntry pairs a title with its category for projections grouped per
// category.
type TitleEntry struct {
	Title      string
	CategoryID int
}

// TitleEntriesByOwner is TitlesByOwner with the category kept, visibility
// rules unchanged.
func (s *Store) TitleEntriesByOwner(ctx context.Context, ownerID string, publicOnly bool) ([]TitleEntry, error) {
	q := s.DB.WithContext(ctx).Model(&models.Item{}).
		Select("DISTINCT items.title AS title, items.category_id AS category_id").
		Joins("JOIN item_lists ON item_lists.item_id = items.id").
		Joins("JOIN lists ON lists.id = item_lists.list_id").
		Where("lists.owner_id = ? AND lists.deleted_at IS NULL", ownerID)
	if publicOnly {
		q = q.Where("lists.is_public = TRUE")
	}
	var rows []TitleEntry
	if err := q.Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "title entries by owner")
	}
	return rows, nil
}
