package store

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/TareSY/MyBacklog-sub000/internal/category"
	"github.com/TareSY/MyBacklog-sub000/internal/models"
)

func (s *Store) CreateList(ctx context.Context, l *models.List) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if err := s.DB.WithContext(ctx).Create(l).Error; err != nil {
		return errors.Wrap(err, "create list")
	}
	return nil
}

func (s *Store) GetList(ctx context.Context, id string) (*models.List, error) {
	var l models.List
	if err := s.DB.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (s *Store) GetListBySlug(ctx context.Context, slug string) (*models.List, error) {
	var l models.List
	err := s.DB.WithContext(ctx).
		First(&l, "share_slug = ? AND is_public = TRUE", slug).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

// EnsureListOwner distinguishes a missing list from one the caller does
// not own, so handlers can answer 404 vs 403.
func (s *Store) EnsureListOwner(ctx context.Context, listID, ownerID string) (*models.List, error) {
	l, err := s.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if l.OwnerID != ownerID {
		return nil, ErrNotOwner
	}
	return l, nil
}

// ensureListsOwned verifies the caller owns every id in listIDs. A single
// foreign or missing list fails the whole batch.
func (s *Store) ensureListsOwned(ctx context.Context, listIDs []string, ownerID string) error {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.List{}).
		Where("id IN ? AND owner_id = ?", listIDs, ownerID).
		Count(&count).Error
	if err != nil {
		return errors.Wrap(err, "count owned lists")
	}
	if count != int64(len(dedupe(listIDs))) {
		return ErrNotOwner
	}
	return nil
}

func (s *Store) ListsByOwner(ctx context.Context, ownerID string) ([]models.List, error) {
	var out []models.List
	err := s.DB.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "lists by owner")
	}
	return out, nil
}

func (s *Store) PublicListsByOwner(ctx context.Context, ownerID string) ([]models.List, error) {
	var out []models.List
	err := s.DB.WithContext(ctx).
		Where("owner_id = ? AND is_public = TRUE", ownerID).
		Order("updated_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, errors.Wrap(err, "public lists by owner")
	}
	return out, nil
}

func (s *Store) UpdateList(ctx context.Context, listID, ownerID string, name, description *string, isPublic *bool) (*models.List, error) {
	l, err := s.EnsureListOwner(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}
	if description != nil {
		updates["description"] = *description
	}
	if isPublic != nil {
		updates["is_public"] = *isPublic
	}
	if len(updates) == 0 {
		return l, nil
	}
	if err := s.DB.WithContext(ctx).Model(l).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "update list")
	}
	return l, nil
}

// DeleteList removes the list and its membership rows. Items primarily
// owned elsewhere only lose this one membership; items created through
// this list keep their rows and any memberships in other lists.
func (s *Store) DeleteList(ctx context.Context, listID, ownerID string) error {
	if _, err := s.EnsureListOwner(ctx, listID, ownerID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&models.ItemList{}).Error; err != nil {
			return errors.Wrap(err, "delete memberships")
		}
		if err := tx.Delete(&models.List{}, "id = ?", listID).Error; err != nil {
			return errors.Wrap(err, "delete list")
		}
		return nil
	})
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "list"
	}
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}

func randomSuffix() string {
	// first uuid group, plenty for a vanity suffix
	return strings.SplitN(uuid.NewString(), "-", 2)[0][:6]
}

// MintShareSlug assigns a share slug and flips the list public, enabling
// unauthenticated reads through GetListBySlug. Minting twice keeps the
// existing slug. One retry on collision, then the caller gets ErrSlugTaken.
func (s *Store) MintShareSlug(ctx context.Context, listID, ownerID string) (*models.List, error) {
	l, err := s.EnsureListOwner(ctx, listID, ownerID)
	if err != nil {
		return nil, err
	}
	if l.ShareSlug != nil {
		if !l.IsPublic {
			if err := s.DB.WithContext(ctx).Model(l).Update("is_public", true).Error; err != nil {
				return nil, errors.Wrap(err, "publish list")
			}
		}
		return l, nil
	}
	base := slugify(l.Name)
	for attempt := 0; attempt < 2; attempt++ {
		slug := base + "-" + randomSuffix()
		err := s.DB.WithContext(ctx).Model(l).
			Updates(map[string]any{"share_slug": slug, "is_public": true}).Error
		if err == nil {
			l.ShareSlug = &slug
			l.IsPublic = true
			return l, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.Wrap(err, "mint share slug")
		}
	}
	return nil, ErrSlugTaken
}

// ListSummary is the dashboard projection: counts per category visible
// through the list's membership rows, no item payloads.
type ListSummary struct {
	List       models.List      `json:"list"`
	ItemCounts map[string]int64 `json:"item_counts"`
	Total      int64            `json:"total"`
}

type categoryCountRow struct {
	ListID     string
	CategoryID int
	N          int64
}

func (s *Store) ListSummariesByOwner(ctx context.Context, ownerID string) ([]ListSummary, error) {
	lists, err := s.ListsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	var rows []categoryCountRow
	err = s.DB.WithContext(ctx).Model(&models.Item{}).
		Select("item_lists.list_id AS list_id, items.category_id AS category_id, COUNT(*) AS n").
		Joins("JOIN item_lists ON item_lists.item_id = items.id").
		Joins("JOIN lists ON lists.id = item_lists.list_id").
		Where("lists.owner_id = ? AND lists.deleted_at IS NULL", ownerID).
		Group("item_lists.list_id, items.category_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count list items")
	}

	byList := make(map[string]map[string]int64)
	totals := make(map[string]int64)
	for _, r := range rows {
		if byList[r.ListID] == nil {
			byList[r.ListID] = make(map[string]int64)
		}
		byList[r.ListID][category.Category(r.CategoryID).Slug()] += r.N
		totals[r.ListID] += r.N
	}

	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		counts := byList[l.ID]
		if counts == nil {
			counts = map[string]int64{}
		}
		out = append(out, ListSummary{List: l, ItemCounts: counts, Total: totals[l.ID]})
	}
	return out, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
