package service

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/inspirefinder/likes-backend/internal/catalog/domain"
	"github.com/inspirefinder/likes-backend/internal/catalog/repository"
)

type fakeStore struct {
	categories    []domain.Category
	items         []domain.Item
	listCalls     int
	listItemCalls int
}

func (f *fakeStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	f.listCalls++
	return f.categories, nil
}

func (f *fakeStore) SearchCategories(ctx context.Context, query string) ([]domain.Category, error) {
	var out []domain.Category
	for _, c := range f.categories {
		if c.Name == query {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListPublished(ctx context.Context, categoryID, excludeOwner int64) ([]domain.Item, error) {
	f.listItemCalls++
	var out []domain.Item
	for _, it := range f.items {
		if it.CategoryID == categoryID && it.IsPublished && it.OwnerID != excludeOwner {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) SearchPublished(ctx context.Context, categoryID, excludeOwner int64, query string) ([]domain.Item, error) {
	var out []domain.Item
	for _, it := range f.items {
		if it.CategoryID == categoryID && it.IsPublished && it.Name == query {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	return nil, nil
}

func (f *fakeStore) ListLikedBy(ctx context.Context, userID int64) ([]domain.Item, error) {
	return nil, nil
}

func (f *fakeStore) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeStore) CreateItem(ctx context.Context, in repository.CreateItem) (*domain.Item, error) {
	return &domain.Item{ID: 100, Name: in.Name, OwnerID: in.OwnerID, CategoryID: in.CategoryID}, nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, id, ownerID int64, in repository.UpdateItem) (*domain.Item, error) {
	for i := range f.items {
		if f.items[i].ID == id && f.items[i].OwnerID == ownerID {
			f.items[i].Name = in.Name
			return &f.items[i], nil
		}
	}
	return nil, domain.ErrItemNotFound
}

func (f *fakeStore) DeleteItem(ctx context.Context, id, ownerID int64) error {
	for _, it := range f.items {
		if it.ID == id && it.OwnerID == ownerID {
			return nil
		}
	}
	return domain.ErrItemNotFound
}

func setupService(t *testing.T, store *fakeStore) *CatalogService {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCatalogService(store, cache.New(client), zap.NewNop())
}

func TestCategories_Cached(t *testing.T) {
	store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "art"}, {ID: 2, Name: "music"}}}
	svc := setupService(t, store)
	ctx := context.Background()

	cats, err := svc.Categories(ctx, "")
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, 1, store.listCalls)

	// The cached list survives a change in the store.
	store.categories = append(store.categories, domain.Category{ID: 3, Name: "film"})
	cats, err = svc.Categories(ctx, "")
	require.NoError(t, err)
	assert.Len(t, cats, 2)
	assert.Equal(t, 1, store.listCalls)
}

func TestCategories_SearchBypassesCache(t *testing.T) {
	store := &fakeStore{categories: []domain.Category{{ID: 1, Name: "art"}}}
	svc := setupService(t, store)

	cats, err := svc.Categories(context.Background(), "art")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, 0, store.listCalls)
}

func TestItems_CachedPerViewer(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{ID: 1, Name: "a", CategoryID: 1, OwnerID: 5, IsPublished: true},
		{ID: 2, Name: "b", CategoryID: 1, OwnerID: 6, IsPublished: true},
		{ID: 3, Name: "c", CategoryID: 1, OwnerID: 6, IsPublished: false},
	}}
	svc := setupService(t, store)
	ctx := context.Background()

	t.Run("anonymous sees all published", func(t *testing.T) {
		items, err := svc.Items(ctx, 1, 0, "")
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("viewer's own items excluded under a separate key", func(t *testing.T) {
		items, err := svc.Items(ctx, 1, 5, "")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].ID)
	})

	t.Run("repeat reads hit the cache", func(t *testing.T) {
		calls := store.listItemCalls
		_, err := svc.Items(ctx, 1, 0, "")
		require.NoError(t, err)
		_, err = svc.Items(ctx, 1, 5, "")
		require.NoError(t, err)
		assert.Equal(t, calls, store.listItemCalls)
	})
}

func TestUpdate_OwnerMismatch(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{ID: 1, Name: "a", OwnerID: 5, IsPublished: true},
	}}
	svc := setupService(t, store)

	_, err := svc.Update(context.Background(), 1, 6, repository.UpdateItem{Name: "b"})
	assert.ErrorIs(t, err, domain.ErrNotOwner)
}

func TestDelete_NotFoundVersusNotOwner(t *testing.T) {
	store := &fakeStore{items: []domain.Item{
		{ID: 1, Name: "a", OwnerID: 5, IsPublished: true},
	}}
	svc := setupService(t, store)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Delete(ctx, 1, 6), domain.ErrNotOwner)
	assert.ErrorIs(t, svc.Delete(ctx, 99, 5), domain.ErrItemNotFound)
}
