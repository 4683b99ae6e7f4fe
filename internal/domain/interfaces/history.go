package interfaces

import (
	"context"

	options "optionsdesk/internal/domain/entity/options"
)

type SummaryHistoryRepository interface {
	AddSnapshots(ctx context.Context, snapshots []options.SummarySnapshot) error
	GetLastSnapshots(ctx context.Context, symbol string, limit int) ([]options.SummarySnapshot, error)
	Close() error
}
