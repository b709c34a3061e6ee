package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/catalog/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const itemColumns = `
id, name, description, coalesce(image,''), category_id, user_id,
is_published, likes_count, created_at, updated_at`

func scanItem(row pgx.Row) (*domain.Item, error) {
	var it domain.Item
	err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Image, &it.CategoryID,
		&it.OwnerID, &it.IsPublished, &it.LikesCount, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *Repo) collectItems(ctx context.Context, q string, args ...any) ([]domain.Item, error) {
	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var out []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	return out, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx, `select id, name from categories order by name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return out, nil
}

func (r *Repo) SearchCategories(ctx context.Context, query string) ([]domain.Category, error) {
	rows, err := r.db.Query(ctx,
		`select id, name from categories where name ilike '%' || $1 || '%' order by name`,
		query,
	)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return out, nil
}

// ListPublished returns the published items of a category ordered by
// like count. excludeOwner > 0 drops that user's own items (the
// authenticated listing never shows the viewer their own entries).
func (r *Repo) ListPublished(ctx context.Context, categoryID, excludeOwner int64) ([]domain.Item, error) {
	q := `select ` + itemColumns + `
from items
where category_id = $1 and is_published
order by likes_count desc, id`
	if excludeOwner > 0 {
		q = `select ` + itemColumns + `
from items
where category_id = $1 and is_published and user_id <> $2
order by likes_count desc, id`
		return r.collectItems(ctx, q, categoryID, excludeOwner)
	}
	return r.collectItems(ctx, q, categoryID)
}

// SearchPublished is the search variant of ListPublished; it always
// goes to the database, never through the cache.
func (r *Repo) SearchPublished(ctx context.Context, categoryID, excludeOwner int64, query string) ([]domain.Item, error) {
	q := `select ` + itemColumns + `
from items
where category_id = $1 and is_published and name ilike '%' || $2 || '%'
order by likes_count desc, id`
	if excludeOwner > 0 {
		q = `select ` + itemColumns + `
from items
where category_id = $1 and is_published and name ilike '%' || $2 || '%' and user_id <> $3
order by likes_count desc, id`
		return r.collectItems(ctx, q, categoryID, query, excludeOwner)
	}
	return r.collectItems(ctx, q, categoryID, query)
}

func (r *Repo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Item, error) {
	q := `select ` + itemColumns + `
from items
where user_id = $1
order by created_at desc`
	return r.collectItems(ctx, q, ownerID)
}

// ListLikedBy returns the items a user has liked, most recent like
// first.
func (r *Repo) ListLikedBy(ctx context.Context, userID int64) ([]domain.Item, error) {
	q := `select ` + itemColumns + `
from items
where id in (select item_id from likes where user_id = $1)
order by likes_count desc, id`
	return r.collectItems(ctx, q, userID)
}

func (r *Repo) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	q := `select ` + itemColumns + ` from items where id = $1`
	it, err := scanItem(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return it, nil
}

type CreateItem struct {
	Name        string
	Description string
	Image       string
	CategoryID  int64
	OwnerID     int64
	IsPublished bool
}

func (r *Repo) CreateItem(ctx context.Context, in CreateItem) (*domain.Item, error) {
	q := `
insert into items (name, description, image, category_id, user_id, is_published, likes_count, created_at)
values ($1, $2, nullif($3,''), $4, $5, $6, 0, now())
returning ` + itemColumns
	it, err := scanItem(r.db.QueryRow(ctx, q,
		in.Name, in.Description, in.Image, in.CategoryID, in.OwnerID, in.IsPublished,
	))
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

type UpdateItem struct {
	Name        string
	Description string
	Image       string
	IsPublished bool
}

// UpdateItem updates an item owned by ownerID. A missing row means the
// item does not exist or belongs to someone else; the caller
// distinguishes via GetItem.
func (r *Repo) UpdateItem(ctx context.Context, id, ownerID int64, in UpdateItem) (*domain.Item, error) {
	q := `
update items
set name = $3, description = $4, image = nullif($5,''), is_published = $6, updated_at = now()
where id = $1 and user_id = $2
returning ` + itemColumns
	it, err := scanItem(r.db.QueryRow(ctx, q,
		id, ownerID, in.Name, in.Description, in.Image, in.IsPublished,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item: %w", err)
	}
	return it, nil
}

func (r *Repo) DeleteItem(ctx context.Context, id, ownerID int64) error {
	tag, err := r.db.Exec(ctx,
		`delete from items where id = $1 and user_id = $2`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
