package cronjob

import (
	"context"
	"time"

	"github.com/inspirefinder/likes-backend/internal/cache"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the nightly cache flush. The aggregate cache has no
// TTL, so this is the only bound on its staleness short of an explicit
// operator flush.
type Scheduler struct {
	cache  *cache.Cache
	logger *zap.Logger
	cron   *cron.Cron
}

func NewScheduler(c *cache.Cache, logger *zap.Logger) *Scheduler {
	return &Scheduler{cache: c, logger: logger}
}

// Start schedules the flush at midnight and launches the cron loop.
func (s *Scheduler) Start() error {
	c := cron.New(cron.WithSeconds())

	_, err := c.AddFunc("0 0 0 * * *", func() {
		s.flush()
	})
	if err != nil {
		return err
	}

	s.cron = c
	c.Start()
	s.logger.Info("cache flush scheduler started (nightly at 12:00AM)")
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) flush() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dropped, err := s.cache.InvalidateAll(ctx)
	if err != nil {
		s.logger.Error("nightly cache flush failed", zap.Error(err))
		return
	}
	s.logger.Info("nightly cache flush complete", zap.Int("dropped", dropped))
}
