package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/inspirefinder/likes-backend/config"
	"github.com/inspirefinder/likes-backend/internal/bootstrap"
	"github.com/inspirefinder/likes-backend/internal/cache"
	cronjob "github.com/inspirefinder/likes-backend/internal/recommend/cron"
	recommendhttp "github.com/inspirefinder/likes-backend/internal/recommend/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: cfg.DSN()})
	if err != nil {
		logger.Fatal("open db", zap.Error(err))
	}
	defer pool.Close()

	sqlDB, err := bootstrap.OpenSQLDB(ctx, cfg.DSN())
	if err != nil {
		logger.Fatal("open sql db", zap.Error(err))
	}
	defer sqlDB.Close()

	rdb, err := bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		logger.Fatal("open redis", zap.Error(err))
	}
	defer rdb.Close()

	scheduler := cronjob.NewScheduler(cache.New(rdb), logger)
	if err := scheduler.Start(); err != nil {
		logger.Fatal("start scheduler", zap.Error(err))
	}
	defer scheduler.Stop()

	bootstrap.SetGinMode(cfg.App.Environment)
	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "likes-backend",
		Version:     cfg.App.Version,
		DB:          pool,
		SQLDB:       sqlDB,
		Redis:       rdb,
		Logger:      logger,
		Defaults: recommendhttp.Defaults{
			RecommendK:   cfg.Engine.RecommendK,
			StatisticsK:  cfg.Engine.StatisticsK,
			PopularItems: cfg.Engine.PopularItems,
		},
	})

	logger.Info("listening", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server", zap.Error(err))
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
