package service

import (
	"context"
	"fmt"

	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/inspirefinder/likes-backend/internal/recommend/domain"
	"go.uber.org/zap"
)

// LikeSource supplies the full interaction edge snapshot.
type LikeSource interface {
	ListAll(ctx context.Context) ([]domain.Edge, error)
}

// PopularitySource supplies the global like-counter ranking.
type PopularitySource interface {
	MostLiked(ctx context.Context, limit int) ([]domain.RankedItem, error)
}

// Engine is the collaborative-filtering recommendation engine. It is a
// pure computation/caching layer over the interaction store: the graph
// is rebuilt from a fresh snapshot on every request, and only the
// popularity ranking goes through the cache.
type Engine struct {
	likes      LikeSource
	popularity PopularitySource
	cache      *cache.Cache
	logger     *zap.Logger
}

func NewEngine(likes LikeSource, popularity PopularitySource, c *cache.Cache, logger *zap.Logger) *Engine {
	return &Engine{
		likes:      likes,
		popularity: popularity,
		cache:      c,
		logger:     logger,
	}
}

// BuildGraph reads the current snapshot and materializes the bipartite
// interaction graph. Store failures propagate unmodified; the engine
// does not retry.
func (e *Engine) BuildGraph(ctx context.Context) (*domain.Graph, error) {
	edges, err := e.likes.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}
	return domain.BuildGraph(edges), nil
}

// SimilarUsers returns up to k users ranked by shared item overlap with
// user. A user with no likes gets an empty result.
func (e *Engine) SimilarUsers(ctx context.Context, user domain.UserID, k int) ([]domain.Neighbor, error) {
	graph, err := e.BuildGraph(ctx)
	if err != nil {
		return nil, err
	}
	return graph.SimilarUsers(user, k), nil
}

// Recommend derives candidate items for user from its k most similar
// users' histories, excluding everything user already liked. The result
// is an unordered, de-duplicated set; secondary ordering (e.g. by
// popularity) is the caller's concern.
func (e *Engine) Recommend(ctx context.Context, user domain.UserID, k int) ([]domain.ItemID, error) {
	graph, err := e.BuildGraph(ctx)
	if err != nil {
		return nil, err
	}

	neighbors := graph.SimilarUsers(user, k)
	items := graph.RecommendFrom(user, neighbors)

	e.logger.Debug("recommendation computed",
		zap.Int64("user_id", int64(user)),
		zap.Int("neighbors", len(neighbors)),
		zap.Int("items", len(items)),
		zap.Int("graph_edges", graph.NumEdges()),
	)
	return items, nil
}

// Statistics returns up to k same-interest users and the countItems
// globally most liked items. The popularity ranking is served through
// the cache: the key is per user for historical reasons even though the
// ranking itself is global, so the cache key is an implementation
// detail rather than a personalization guarantee. fresh forces the
// ranking to be recomputed and the cache entry overwritten.
func (e *Engine) Statistics(ctx context.Context, user domain.UserID, k, countItems int, fresh bool) (*domain.Statistics, error) {
	neighbors, err := e.SimilarUsers(ctx, user, k)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("most_popular_items:%d", user)
	compute := func(ctx context.Context) (any, error) {
		ranked, err := e.popularity.MostLiked(ctx, countItems)
		if err != nil {
			return nil, fmt.Errorf("popularity ranking: %w", err)
		}
		return ranked, nil
	}

	var popular []domain.RankedItem
	if fresh {
		err = e.cache.Refresh(ctx, key, &popular, compute)
	} else {
		err = e.cache.GetOrCompute(ctx, key, &popular, compute)
	}
	if err != nil {
		return nil, err
	}

	return &domain.Statistics{
		SimilarUsers: neighbors,
		PopularItems: popular,
	}, nil
}
