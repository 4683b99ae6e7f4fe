package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"optionsdesk/internal/config"
	domain "optionsdesk/internal/domain/entity/underlyings"
	infraunderlyings "optionsdesk/internal/infrastructure/underlyings"

	"github.com/sirupsen/logrus"
)

const defaultUnderlyingsFile = "cmd/seed/underlyings.json"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("config error: %v", err)
	}
	if cfg.Postgres.DSN == "" {
		logger.Fatal("DATABASE_DSN is required")
	}

	path := strings.TrimSpace(os.Getenv("UNDERLYINGS_FILE"))
	if path == "" {
		path = defaultUnderlyingsFile
	}
	list, err := readUnderlyings(path)
	if err != nil {
		logger.Fatalf("read underlyings: %v", err)
	}

	repo, err := infraunderlyings.NewRepository(ctx, cfg.Postgres.DSN)
	if err != nil {
		logger.Fatalf("connect postgres: %v", err)
	}
	defer repo.Close()

	if err := repo.Migrate(ctx); err != nil {
		logger.Fatalf("migrate: %v", err)
	}
	if err := repo.UpsertUnderlyings(ctx, list); err != nil {
		logger.Fatalf("save underlyings: %v", err)
	}
	logger.WithFields(logrus.Fields{
		"underlyings": len(list),
		"file":        path,
	}).Info("underlyings synced")
}

type underlyingRecord struct {
	Symbol   string `json:"symbol"`
	Exchange string `json:"exchange"`
	Kind     string `json:"kind"`
	Active   *bool  `json:"active"`
}

func readUnderlyings(path string) ([]domain.Underlying, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read underlyings file: %w", err)
	}
	var payload struct {
		Underlyings []underlyingRecord `json:"underlyings"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("parse underlyings file: %w", err)
	}

	seen := make(map[string]struct{}, len(payload.Underlyings))
	list := make([]domain.Underlying, 0, len(payload.Underlyings))
	for i, rec := range payload.Underlyings {
		kind, err := domain.NewKind(rec.Kind)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		u := domain.Underlying{Symbol: rec.Symbol, Exchange: rec.Exchange, Kind: kind, Active: true}
		if rec.Active != nil {
			u.Active = *rec.Active
		}
		u.Normalize()
		if u.Symbol == "" {
			return nil, fmt.Errorf("entry %d: symbol is empty", i)
		}
		if _, dup := seen[u.ScanTicker()]; dup {
			continue
		}
		seen[u.ScanTicker()] = struct{}{}
		list = append(list, u)
	}
	if len(list) == 0 {
		return nil, errors.New("underlyings list is empty")
	}
	return list, nil
}
