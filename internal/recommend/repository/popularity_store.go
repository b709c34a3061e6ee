package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
)

// PopularityStore reads the externally-maintained per-item like
// counters. The counters are the single source of truth for global
// popularity; graph degree is never consulted.
type PopularityStore struct {
	db *sql.DB
}

func NewPopularityStore(db *sql.DB) *PopularityStore {
	return &PopularityStore{db: db}
}

// MostLiked returns up to limit items with at least one like, ordered
// by their like counter descending. Ties break on item id so the
// ranking is reproducible.
func (s *PopularityStore) MostLiked(ctx context.Context, limit int) ([]domain.RankedItem, error) {
	const q = `
		SELECT id, likes_count
		FROM items
		WHERE likes_count > 0
		ORDER BY likes_count DESC, id ASC
		LIMIT $1
	`

	rows, err := s.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("query most liked: %w", err)
	}
	defer rows.Close()

	var ranked []domain.RankedItem
	for rows.Next() {
		var r domain.RankedItem
		if err := rows.Scan(&r.Item, &r.Likes); err != nil {
			return nil, fmt.Errorf("scan ranked item: %w", err)
		}
		ranked = append(ranked, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query most liked: %w", err)
	}
	return ranked, nil
}
