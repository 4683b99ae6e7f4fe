package history

import (
	"context"
	"errors"
	"strings"

	options "optionsdesk/internal/domain/entity/options"
	interfaces "optionsdesk/internal/domain/interfaces"
)

const MaxLimit = 1000

var (
	ErrNilSnapshot  = errors.New("snapshot is nil")
	ErrEmptySymbol  = errors.New("symbol is required")
	ErrInvalidLimit = errors.New("limit must be between 1 and 1000")
)

type Service struct {
	repo interfaces.SummaryHistoryRepository
}

func NewService(repo interfaces.SummaryHistoryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) AddSnapshot(ctx context.Context, snapshot *options.SummarySnapshot) error {
	if snapshot == nil {
		return ErrNilSnapshot
	}
	return s.repo.AddSnapshots(ctx, []options.SummarySnapshot{*snapshot})
}

func (s *Service) AddSnapshots(ctx context.Context, snapshots []options.SummarySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	return s.repo.AddSnapshots(ctx, snapshots)
}

// GetLastSnapshots returns up to limit snapshots of symbol, newest first.
func (s *Service) GetLastSnapshots(ctx context.Context, symbol string, limit int) ([]options.SummarySnapshot, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	if limit <= 0 || limit > MaxLimit {
		return nil, ErrInvalidLimit
	}
	return s.repo.GetLastSnapshots(ctx, symbol, limit)
}

func (s *Service) Close() error {
	return s.repo.Close()
}
