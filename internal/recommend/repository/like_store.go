package repository

import (
	"context"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LikeStore is the read-side adapter over the interaction store: it
// supplies the full (user, item) edge snapshot the graph is built from.
type LikeStore struct {
	db *pgxpool.Pool
}

func NewLikeStore(db *pgxpool.Pool) *LikeStore {
	return &LikeStore{db: db}
}

// ListAll returns every like edge currently recorded. No pagination:
// the engine treats this as one consistent snapshot.
func (s *LikeStore) ListAll(ctx context.Context) ([]domain.Edge, error) {
	const q = `select user_id, item_id from likes`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	defer rows.Close()

	var edges []domain.Edge
	for rows.Next() {
		var e domain.Edge
		if err := rows.Scan(&e.User, &e.Item); err != nil {
			return nil, fmt.Errorf("scan like: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list likes: %w", err)
	}
	return edges, nil
}
