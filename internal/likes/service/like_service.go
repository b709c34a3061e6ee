package service

import (
	"context"

	"github.com/inspirefinder/likes-backend/internal/likes/domain"
	"github.com/inspirefinder/likes-backend/internal/likes/repository"
	"go.uber.org/zap"
)

// LikeService handles like/unlike requests. It deliberately does not
// touch the aggregate cache: cached listings and popularity rankings
// are stale by design and only refreshed on explicit request or flush.
type LikeService struct {
	repo   *repository.LikeRepository
	logger *zap.Logger
}

func NewLikeService(repo *repository.LikeRepository, logger *zap.Logger) *LikeService {
	return &LikeService{repo: repo, logger: logger}
}

func (s *LikeService) Like(ctx context.Context, userID, itemID int64) (*domain.Like, error) {
	like, err := s.repo.Create(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("like recorded",
		zap.Int64("user_id", userID),
		zap.Int64("item_id", itemID),
	)
	return like, nil
}

func (s *LikeService) Unlike(ctx context.Context, userID, itemID int64) error {
	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		return err
	}
	s.logger.Info("like removed",
		zap.Int64("user_id", userID),
		zap.Int64("item_id", itemID),
	)
	return nil
}

func (s *LikeService) ListByUser(ctx context.Context, userID int64) ([]domain.Like, error) {
	return s.repo.ListByUser(ctx, userID)
}
