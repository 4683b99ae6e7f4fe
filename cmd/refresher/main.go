package main

import (
	"context"
	"errors"
	"flag"
	"os/signal"
	"syscall"

	"optionsdesk/internal/application/refresher"
	apphistory "optionsdesk/internal/application/service/history"
	appoptions "optionsdesk/internal/application/service/options"
	appunderlyings "optionsdesk/internal/application/service/underlyings"
	"optionsdesk/internal/config"
	"optionsdesk/internal/infrastructure/broker"
	infrahistory "optionsdesk/internal/infrastructure/history"
	"optionsdesk/internal/infrastructure/scanner"
	infraunderlyings "optionsdesk/internal/infrastructure/underlyings"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	once := flag.Bool("once", false, "run a single refresh and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootLogger := logrus.New()
	bootLogger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatalf("config error: %v", err)
	}
	logger := cfg.NewLogger()

	var cache scanner.ResponseCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		cache = scanner.NewRedisCache(redisClient)
	}
	scanClient := scanner.NewClient(scanner.Config{
		BaseURL:  cfg.Scanner.BaseURL,
		Exchange: cfg.Scanner.Exchange,
		Timeout:  cfg.Scanner.Timeout(),
		CacheTTL: cfg.Cache.TTL(),
	}, cache, logger)
	optionsService := appoptions.NewService(scanClient, logger)

	symbols, closeSymbols, err := symbolSource(ctx, cfg)
	if err != nil {
		logger.Fatalf("symbols: %v", err)
	}
	defer closeSymbols()

	sink, closeSink, err := snapshotSink(cfg, logger)
	if err != nil {
		logger.Fatalf("sink: %v", err)
	}
	defer closeSink()

	r, err := refresher.New(refresher.Config{
		Schedule:    cfg.Refresh.Cron,
		Concurrency: cfg.Refresh.Concurrency,
		Timeout:     cfg.Refresh.Timeout(),
	}, symbols, optionsService, sink, logger)
	if err != nil {
		logger.Fatalf("init refresher: %v", err)
	}

	if *once {
		if _, err := r.RunOnce(ctx); err != nil {
			logger.Errorf("refresh failed: %v", err)
		}
		return
	}
	if err := r.Start(ctx); err != nil {
		logger.Errorf("refresher stopped with error: %v", err)
	}
}

// symbolSource prefers the static REFRESH_SYMBOLS list over the registry.
func symbolSource(ctx context.Context, cfg *config.Config) (refresher.SymbolLister, func(), error) {
	if len(cfg.Refresh.Symbols) > 0 {
		return refresher.QualifiedSymbols(cfg.Refresh.Symbols, cfg.Scanner.Exchange), func() {}, nil
	}
	if cfg.Postgres.DSN == "" {
		return nil, nil, errors.New("set REFRESH_SYMBOLS or DATABASE_DSN")
	}
	repo, err := infraunderlyings.NewRepository(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, err
	}
	return appunderlyings.NewService(repo), repo.Close, nil
}

// snapshotSink publishes to RabbitMQ when configured, otherwise writes
// straight to the history store.
func snapshotSink(cfg *config.Config, logger *logrus.Logger) (refresher.SnapshotSink, func(), error) {
	if cfg.RabbitMQ.URL != "" {
		pub, err := broker.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.SummariesExchange, logger)
		if err != nil {
			return nil, nil, err
		}
		return pub, pub.Close, nil
	}
	if !cfg.History.Enabled() {
		return nil, nil, errors.New("set RABBITMQ_URL or a history backend")
	}
	repo, err := infrahistory.NewRepository(infrahistory.Config{
		DSN:        cfg.History.DSN,
		SQLitePath: cfg.History.SQLitePath,
	})
	if err != nil {
		return nil, nil, err
	}
	historyService := apphistory.NewService(repo)
	writer := broker.NewBatchWriter(broker.BatchConfig{
		Size:    cfg.RabbitMQ.BatchSize,
		Timeout: cfg.RabbitMQ.BatchTimeout(),
	}, historyService, logger)
	writer.Run(context.Background())

	closeFn := func() {
		if err := writer.Stop(context.Background()); err != nil {
			logger.Errorf("flush snapshots: %v", err)
		}
		if err := historyService.Close(); err != nil {
			logger.Errorf("close history: %v", err)
		}
	}
	return writer, closeFn, nil
}
