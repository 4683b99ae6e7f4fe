package interfaces

import (
	"context"

	domain "optionsdesk/internal/domain/entity/underlyings"

	"github.com/google/uuid"
)

type UnderlyingsRepository interface {
	CreateUnderlying(ctx context.Context, underlying *domain.Underlying) error
	GetUnderlying(ctx context.Context, uid uuid.UUID) (*domain.Underlying, error)
	GetUnderlyingBySymbol(ctx context.Context, exchange, symbol string) (*domain.Underlying, error)
	ListUnderlyings(ctx context.Context, activeOnly bool) ([]domain.Underlying, error)
	UpdateUnderlying(ctx context.Context, underlying *domain.Underlying) error
	DeleteUnderlying(ctx context.Context, uid uuid.UUID) error
	Close()
}
