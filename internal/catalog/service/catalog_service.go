package service

import (
	"context"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/inspirefinder/likes-backend/internal/catalog/domain"
	"github.com/inspirefinder/likes-backend/internal/catalog/repository"
	"go.uber.org/zap"
)

// Store is the catalog persistence surface the service needs.
type Store interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	SearchCategories(ctx context.Context, query string) ([]domain.Category, error)
	ListPublished(ctx context.Context, categoryID, excludeOwner int64) ([]domain.Item, error)
	SearchPublished(ctx context.Context, categoryID, excludeOwner int64, query string) ([]domain.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error)
	ListLikedBy(ctx context.Context, userID int64) ([]domain.Item, error)
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	CreateItem(ctx context.Context, in repository.CreateItem) (*domain.Item, error)
	UpdateItem(ctx context.Context, id, ownerID int64, in repository.UpdateItem) (*domain.Item, error)
	DeleteItem(ctx context.Context, id, ownerID int64) error
}

// CatalogService serves category and item listings. The unsearched
// listings are memoized without expiry; search queries always hit the
// database, matching the original listing behavior.
type CatalogService struct {
	repo   Store
	cache  *cache.Cache
	logger *zap.Logger
}

func NewCatalogService(repo Store, c *cache.Cache, logger *zap.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: c, logger: logger}
}

// Categories lists all categories through the cache. A non-empty search
// bypasses the cache entirely.
func (s *CatalogService) Categories(ctx context.Context, search string) ([]domain.Category, error) {
	if search != "" {
		return s.repo.SearchCategories(ctx, search)
	}

	var cats []domain.Category
	err := s.cache.GetOrCompute(ctx, "category_list", &cats, func(ctx context.Context) (any, error) {
		return s.repo.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cats, nil
}

// Items lists the published items of a category. viewer > 0 excludes
// the viewer's own items and keys the cache per viewer.
func (s *CatalogService) Items(ctx context.Context, categoryID, viewer int64, search string) ([]domain.Item, error) {
	if search != "" {
		return s.repo.SearchPublished(ctx, categoryID, viewer, search)
	}

	key := fmt.Sprintf("item_list:%d", categoryID)
	if viewer > 0 {
		key = fmt.Sprintf("item_list:%d:user:%d", categoryID, viewer)
	}

	var items []domain.Item
	err := s.cache.GetOrCompute(ctx, key, &items, func(ctx context.Context) (any, error) {
		return s.repo.ListPublished(ctx, categoryID, viewer)
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CatalogService) Item(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetItem(ctx, id)
}

func (s *CatalogService) OwnItems(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *CatalogService) LikedItems(ctx context.Context, userID int64) ([]domain.Item, error) {
	return s.repo.ListLikedBy(ctx, userID)
}

func (s *CatalogService) Create(ctx context.Context, in repository.CreateItem) (*domain.Item, error) {
	it, err := s.repo.CreateItem(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info("item created", zap.Int64("item_id", it.ID), zap.Int64("owner_id", it.OwnerID))
	return it, nil
}

// Update rewrites an item. The caller must be the owner; a mismatch
// surfaces as ErrNotOwner when the item exists under another user.
func (s *CatalogService) Update(ctx context.Context, id, ownerID int64, in repository.UpdateItem) (*domain.Item, error) {
	it, err := s.repo.UpdateItem(ctx, id, ownerID, in)
	if err == nil {
		return it, nil
	}
	if err == domain.ErrItemNotFound {
		if _, getErr := s.repo.GetItem(ctx, id); getErr == nil {
			return nil, domain.ErrNotOwner
		}
	}
	return nil, err
}

func (s *CatalogService) Delete(ctx context.Context, id, ownerID int64) error {
	err := s.repo.DeleteItem(ctx, id, ownerID)
	if err == domain.ErrItemNotFound {
		if _, getErr := s.repo.GetItem(ctx, id); getErr == nil {
			return domain.ErrNotOwner
		}
	}
	return err
}
