package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	docs "optionsdesk/docs"
	apphistory "optionsdesk/internal/application/service/history"
	appoptions "optionsdesk/internal/application/service/options"
	appunderlyings "optionsdesk/internal/application/service/underlyings"
	"optionsdesk/internal/config"
	"optionsdesk/internal/infrastructure/broker"
	infrahistory "optionsdesk/internal/infrastructure/history"
	"optionsdesk/internal/infrastructure/scanner"
	infraunderlyings "optionsdesk/internal/infrastructure/underlyings"
	infrahttp "optionsdesk/internal/interfaces/http"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	bootLogger := logrus.New()
	bootLogger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		bootLogger.Fatalf("failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()

	var cache scanner.ResponseCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		cache = scanner.NewRedisCache(redisClient)
	}

	scanClient := scanner.NewClient(scanner.Config{
		BaseURL:  cfg.Scanner.BaseURL,
		Exchange: cfg.Scanner.Exchange,
		Timeout:  cfg.Scanner.Timeout(),
		CacheTTL: cfg.Cache.TTL(),
	}, cache, logger)

	deps := infrahttp.Deps{
		Options: appoptions.NewService(scanClient, logger),
		Logger:  logger,
	}

	if cfg.Postgres.DSN != "" {
		underlyingRepo, err := infraunderlyings.NewRepository(ctx, cfg.Postgres.DSN)
		if err != nil {
			logger.Fatalf("failed to init underlyings repo: %v", err)
		}
		defer underlyingRepo.Close()
		if err := underlyingRepo.Migrate(ctx); err != nil {
			logger.Fatalf("failed to migrate underlyings: %v", err)
		}
		deps.Underlyings = appunderlyings.NewService(underlyingRepo)
	}

	var consumer *broker.Consumer
	if cfg.History.Enabled() {
		historyRepo, err := infrahistory.NewRepository(infrahistory.Config{
			DSN:        cfg.History.DSN,
			SQLitePath: cfg.History.SQLitePath,
		})
		if err != nil {
			logger.Fatalf("failed to init history repo: %v", err)
		}
		historyService := apphistory.NewService(historyRepo)
		defer historyService.Close()
		deps.History = historyService

		if cfg.RabbitMQ.URL != "" {
			batcher := broker.NewBatchWriter(broker.BatchConfig{
				Size:    cfg.RabbitMQ.BatchSize,
				Timeout: cfg.RabbitMQ.BatchTimeout(),
			}, historyService, logger)
			consumer, err = broker.NewConsumer(cfg.RabbitMQ, batcher, logger)
			if err != nil {
				logger.Fatalf("failed to init consumer: %v", err)
			}
			if err := consumer.Start(ctx); err != nil {
				logger.Fatalf("failed to start consumer: %v", err)
			}
		}
	}

	server := &http.Server{
		Addr:              cfg.HTTP.Addr(),
		Handler:           infrahttp.NewHandler(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infof("HTTP server listening on %s", cfg.HTTP.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Infof("shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("server shutdown error: %v", err)
		}
		if consumer != nil {
			if err := consumer.Close(shutdownCtx); err != nil {
				logger.Errorf("consumer close error: %v", err)
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Errorf("http server error: %v", err)
	}
	logger.Info("server stopped")
}
