package cmd

import (
	"context"
	"errors"
	"fmt"

	"bid-reconciler/internal/auctionsite"
	"bid-reconciler/internal/checker"
	"bid-reconciler/internal/config"
	"bid-reconciler/internal/models"
	"bid-reconciler/internal/notify"
	"bid-reconciler/internal/ratelimit"
	"bid-reconciler/internal/repository"
	"bid-reconciler/internal/scheduler"
	tracking "bid-reconciler/internal/trackingService"
	"bid-reconciler/internal/vault"
	"bid-reconciler/utils"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

// deps holds the wired application components
type deps struct {
	cfg       config.Config
	store     repository.Store
	runner    *checker.Runner
	scheduler *scheduler.Scheduler
	service   *tracking.TrackingService

	closers []func() error
}

func buildDeps(ctx context.Context, cfg config.Config) (*deps, error) {
	d := &deps{cfg: cfg}

	store, err := d.openStore(ctx)
	if err != nil {
		_ = d.Close()
		return nil, err
	}
	d.store = store

	v, err := vault.New(cfg.EncryptionKey)
	if err != nil {
		_ = d.Close()
		return nil, err
	}

	notifier, err := d.openNotifiers(ctx)
	if err != nil {
		_ = d.Close()
		return nil, err
	}

	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	browser := auctionsite.NewBrowser(cfg.SiteTimeout)
	sites := auctionsite.Registry{
		models.AuctionCopart: auctionsite.NewSiteClient(auctionsite.CopartProfile(), browser, limiter,
			auctionsite.WithSnapshotDir(cfg.SnapshotDir)),
		models.AuctionIAAI: auctionsite.NewSiteClient(auctionsite.IAAIProfile(), browser, limiter,
			auctionsite.WithSnapshotDir(cfg.SnapshotDir)),
	}
	d.closers = append(d.closers, sites.Close)

	d.runner = checker.NewRunner(store, sites, v, notifier)
	d.scheduler = scheduler.New(scheduler.Config{
		Interval:    cfg.CheckInterval,
		BatchSize:   cfg.CheckBatchSize,
		Lookback:    cfg.CheckLookback,
		Lookahead:   cfg.CheckLookahead,
		MinCheckAge: cfg.CheckMinAge,
		PauseMin:    cfg.CheckPauseMin,
		PauseMax:    cfg.CheckPauseMax,
	}, store, d.runner)
	d.service = tracking.NewTrackingService(store, d.runner, d.scheduler)
	return d, nil
}

func (d *deps) openStore(ctx context.Context) (repository.Store, error) {
	if d.cfg.DatabaseURL == "" {
		utils.Warn("DATABASE_URL not set, using in-memory store", nil)
		return repository.NewMemoryRepo(), nil
	}

	pool, err := pgxpool.New(ctx, d.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	d.closers = append(d.closers, func() error { pool.Close(); return nil })

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}
	if err := repository.Migrate(pool); err != nil {
		return nil, err
	}
	utils.Info("connected to postgres", nil)
	return repository.NewPostgresRepo(pool), nil
}

func (d *deps) openNotifiers(ctx context.Context) (notify.Notifier, error) {
	sinks := notify.Multi{notify.LogNotifier{}}

	if d.cfg.RabbitMQURL != "" {
		conn, err := amqp.Dial(d.cfg.RabbitMQURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}
		d.closers = append(d.closers, conn.Close)

		publisher, err := notify.NewAMQPNotifier(conn)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, publisher.Close)
		sinks = append(sinks, publisher)
		utils.Info("win notifications enabled on rabbitmq", map[string]any{"exchange": notify.Exchange})
	}

	if d.cfg.RedisURL != "" {
		opts, err := redis.ParseURL(d.cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		client := redis.NewClient(opts)
		d.closers = append(d.closers, client.Close)

		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to reach redis: %w", err)
		}
		sinks = append(sinks, notify.NewRedisNotifier(client, d.cfg.NotifyChannel))
		utils.Info("win notifications enabled on redis", map[string]any{"channel": d.cfg.NotifyChannel})
	}

	return sinks, nil
}

// Close releases everything opened by buildDeps, most recent first
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
