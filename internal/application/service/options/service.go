package options

import (
	"context"
	"errors"
	"fmt"
	"strings"

	entity "optionsdesk/internal/domain/entity/options"
	interfaces "optionsdesk/internal/domain/interfaces"
	"optionsdesk/internal/domain/optionchain"

	"github.com/sirupsen/logrus"
)

var ErrEmptySymbol = errors.New("symbol is required")

// ChainView is a chain together with the summary computed from it.
type ChainView struct {
	Chain   *entity.OptionChain `json:"chain"`
	Summary entity.ChainSummary `json:"summary"`
}

type Service struct {
	source interfaces.OptionsScanSource
	logger *logrus.Entry
}

func NewService(source interfaces.OptionsScanSource, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
	}
	return &Service{source: source, logger: logger.WithField("component", "options")}
}

// NormalizeSymbol trims and upper-cases a ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// GetChain fetches the raw feed for symbol and builds the chain at expiry,
// falling back to the earliest expiry when expiry is empty or unknown.
func (s *Service) GetChain(ctx context.Context, symbol, expiry string) (*entity.OptionChain, error) {
	symbol = NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, ErrEmptySymbol
	}
	payload, err := s.source.FetchOptions(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch options %s: %w", symbol, err)
	}
	chain, err := optionchain.BuildChain(symbol, payload, strings.TrimSpace(expiry))
	if err != nil {
		return nil, fmt.Errorf("build chain %s: %w", symbol, err)
	}
	if n := len(chain.UnknownSides); n > 0 {
		s.logger.WithFields(logrus.Fields{
			"symbol": symbol,
			"count":  n,
		}).Warn("quotes with unknown option type")
	}
	return chain, nil
}

func (s *Service) GetSummary(ctx context.Context, symbol, expiry string) (entity.ChainSummary, error) {
	chain, err := s.GetChain(ctx, symbol, expiry)
	if err != nil {
		return entity.ChainSummary{}, err
	}
	return optionchain.Summarize(chain), nil
}

func (s *Service) GetChainWithSummary(ctx context.Context, symbol, expiry string) (*ChainView, error) {
	chain, err := s.GetChain(ctx, symbol, expiry)
	if err != nil {
		return nil, err
	}
	return &ChainView{Chain: chain, Summary: optionchain.Summarize(chain)}, nil
}

// GetExpiries lists every expiry the feed carries for symbol, ascending.
func (s *Service) GetExpiries(ctx context.Context, symbol string) ([]string, error) {
	chain, err := s.GetChain(ctx, symbol, "")
	if err != nil {
		return nil, err
	}
	return chain.Expiries, nil
}
