package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
)

type DBOptions struct {
	DSN       string
	MaxConns  int32
	MinConns  int32
	ConnectTO time.Duration
	PingTO    time.Duration
}

// OpenDB opens the pgx pool used by the feature repositories.
func OpenDB(ctx context.Context, opt DBOptions) (*pgxpool.Pool, error) {
	if opt.DSN == "" {
		return nil, fmt.Errorf("database DSN is not set")
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}
	if opt.PingTO == 0 {
		opt.PingTO = 2 * time.Second
	}
	if opt.MaxConns == 0 {
		opt.MaxConns = 10
	}
	if opt.MinConns == 0 {
		opt.MinConns = 2
	}

	cfg, err := pgxpool.ParseConfig(opt.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = opt.MaxConns
	cfg.MinConns = opt.MinConns
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(cctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	pctx, pcancel := context.WithTimeout(ctx, opt.PingTO)
	defer pcancel()

	if err := pool.Ping(pctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping: %w", err)
	}

	return pool, nil
}

// OpenSQLDB opens the database/sql handle the popularity store reads
// through (lib/pq driver).
func OpenSQLDB(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database DSN is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}

	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sql ping: %w", err)
	}

	return db, nil
}
