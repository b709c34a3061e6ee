package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/likes/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeRepository owns the like edges and the per-item like counter.
// Edge insert/delete and the counter update happen in one transaction,
// so the counter the popularity ranking reads never drifts from edge
// existence.
type LikeRepository struct {
	db *pgxpool.Pool
}

func NewLikeRepository(db *pgxpool.Pool) *LikeRepository {
	return &LikeRepository{db: db}
}

// Create records a like from user on item and increments the item's
// counter. Returns domain errors for the rejection cases: the item does
// not exist, belongs to the user, is unpublished, or is already liked.
func (r *LikeRepository) Create(ctx context.Context, userID, itemID int64) (*domain.Like, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin like tx: %w", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int64
	var published bool
	err = tx.QueryRow(ctx,
		`select user_id, is_published from items where id = $1 for update`,
		itemID,
	).Scan(&ownerID, &published)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock item: %w", err)
	}

	if ownerID == userID {
		return nil, domain.ErrOwnItem
	}
	if !published {
		return nil, domain.ErrNotPublished
	}

	var like domain.Like
	err = tx.QueryRow(ctx, `
insert into likes (user_id, item_id, created_at)
values ($1, $2, now())
on conflict (user_id, item_id) do nothing
returning id, user_id, item_id, created_at;
`, userID, itemID).Scan(&like.ID, &like.UserID, &like.ItemID, &like.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAlreadyLiked
	}
	if err != nil {
		return nil, fmt.Errorf("insert like: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`update items set likes_count = likes_count + 1 where id = $1`,
		itemID,
	); err != nil {
		return nil, fmt.Errorf("increment counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit like: %w", err)
	}
	return &like, nil
}

// Delete removes user's like on item and decrements the counter.
func (r *LikeRepository) Delete(ctx context.Context, userID, itemID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin unlike tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`delete from likes where user_id = $1 and item_id = $2`,
		userID, itemID,
	)
	if err != nil {
		return fmt.Errorf("delete like: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrLikeNotFound
	}

	if _, err := tx.Exec(ctx,
		`update items set likes_count = greatest(likes_count - 1, 0) where id = $1`,
		itemID,
	); err != nil {
		return fmt.Errorf("decrement counter: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit unlike: %w", err)
	}
	return nil
}

// ListByUser returns user's likes, newest first.
func (r *LikeRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Like, error) {
	rows, err := r.db.Query(ctx, `
select id, user_id, item_id, created_at
from likes
where user_id = $1
order by created_at desc;
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list likes by user: %w", err)
	}
	defer rows.Close()

	var out []domain.Like
	for rows.Next() {
		var l domain.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.ItemID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list likes by user: %w", err)
	}
	return out, nil
}
