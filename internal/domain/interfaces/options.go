package interfaces

import (
	"context"

	"optionsdesk/internal/domain/optionchain"
)

// OptionsScanSource fetches the raw columnar options feed for one underlying.
type OptionsScanSource interface {
	FetchOptions(ctx context.Context, symbol string) (*optionchain.ScanPayload, error)
}
