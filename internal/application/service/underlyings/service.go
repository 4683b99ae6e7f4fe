package underlyings

import (
	"context"
	"errors"
	"slices"

	domain "optionsdesk/internal/domain/entity/underlyings"
	interfaces "optionsdesk/internal/domain/interfaces"

	"github.com/google/uuid"
)

var (
	ErrNilUnderlying = errors.New("underlying is nil")
	ErrEmptySymbol   = errors.New("underlying symbol is required")
	ErrInvalidKind   = errors.New("underlying kind must be index, equity or etf")
)

type Service struct {
	repo interfaces.UnderlyingsRepository
}

func NewService(repo interfaces.UnderlyingsRepository) *Service {
	return &Service{repo: repo}
}

func validate(underlying *domain.Underlying) error {
	if underlying == nil {
		return ErrNilUnderlying
	}
	underlying.Normalize()
	if underlying.Symbol == "" {
		return ErrEmptySymbol
	}
	if !underlying.Kind.IsValid() {
		return ErrInvalidKind
	}
	return nil
}

func (s *Service) CreateUnderlying(ctx context.Context, underlying *domain.Underlying) error {
	if err := validate(underlying); err != nil {
		return err
	}
	if underlying.UID == uuid.Nil {
		underlying.UID = uuid.New()
	}
	return s.repo.CreateUnderlying(ctx, underlying)
}

func (s *Service) GetUnderlying(ctx context.Context, uid uuid.UUID) (*domain.Underlying, error) {
	return s.repo.GetUnderlying(ctx, uid)
}

func (s *Service) GetUnderlyingBySymbol(ctx context.Context, exchange, symbol string) (*domain.Underlying, error) {
	u := domain.Underlying{Symbol: symbol, Exchange: exchange}
	u.Normalize()
	if u.Symbol == "" {
		return nil, ErrEmptySymbol
	}
	return s.repo.GetUnderlyingBySymbol(ctx, u.Exchange, u.Symbol)
}

func (s *Service) ListUnderlyings(ctx context.Context, activeOnly bool) ([]domain.Underlying, error) {
	return s.repo.ListUnderlyings(ctx, activeOnly)
}

// ActiveSymbols returns the EXCHANGE:SYMBOL ticker of every active underlying,
// sorted.
func (s *Service) ActiveSymbols(ctx context.Context) ([]string, error) {
	list, err := s.repo.ListUnderlyings(ctx, true)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(list))
	for _, u := range list {
		symbols = append(symbols, u.ScanTicker())
	}
	slices.Sort(symbols)
	return symbols, nil
}

func (s *Service) UpdateUnderlying(ctx context.Context, underlying *domain.Underlying) error {
	if err := validate(underlying); err != nil {
		return err
	}
	return s.repo.UpdateUnderlying(ctx, underlying)
}

func (s *Service) DeleteUnderlying(ctx context.Context, uid uuid.UUID) error {
	return s.repo.DeleteUnderlying(ctx, uid)
}

func (s *Service) Close() {
	s.repo.Close()
}
