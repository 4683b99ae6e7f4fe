// Package refresher periodically rebuilds the chains of tracked underlyings
// and emits one summary snapshot per symbol.
package refresher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	optionsvc "optionsdesk/internal/application/service/options"
	"optionsdesk/internal/config"
	options "optionsdesk/internal/domain/entity/options"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// SymbolLister yields the tickers to refresh on each run, bare or in
// EXCHANGE:SYMBOL form.
type SymbolLister interface {
	ActiveSymbols(ctx context.Context) ([]string, error)
}

// StaticSymbols is a fixed symbol list.
type StaticSymbols []string

func (s StaticSymbols) ActiveSymbols(context.Context) ([]string, error) {
	return s, nil
}

// QualifiedSymbols prefixes every bare symbol with exchange so snapshots are
// keyed the same way as registry tickers.
func QualifiedSymbols(symbols []string, exchange string) StaticSymbols {
	exchange = strings.ToUpper(strings.TrimSpace(exchange))
	out := make(StaticSymbols, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if exchange != "" && !strings.Contains(s, ":") {
			s = exchange + ":" + s
		}
		out = append(out, s)
	}
	return out
}

type ChainSource interface {
	GetChainWithSummary(ctx context.Context, symbol, expiry string) (*optionsvc.ChainView, error)
}

// SnapshotSink receives every snapshot produced by a run.
type SnapshotSink interface {
	PublishSnapshot(ctx context.Context, snapshot options.SummarySnapshot) error
}

type Config struct {
	Schedule    string
	Concurrency int
	Timeout     time.Duration
}

// Result counts the outcome of one run.
type Result struct {
	Refreshed int
	Failed    int
}

type Refresher struct {
	cfg     Config
	symbols SymbolLister
	chains  ChainSource
	sink    SnapshotSink
	logger  *logrus.Entry
	now     func() time.Time
}

func New(cfg Config, symbols SymbolLister, chains ChainSource, sink SnapshotSink, logger *logrus.Logger) (*Refresher, error) {
	if symbols == nil || chains == nil || sink == nil {
		return nil, errors.New("refresher: symbols, chains and sink are required")
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Refresher{
		cfg:     cfg,
		symbols: symbols,
		chains:  chains,
		sink:    sink,
		logger:  logger.WithField("component", "refresher"),
		now:     time.Now,
	}, nil
}

// RunOnce refreshes every listed symbol. A failing symbol is logged and
// counted; it never aborts the others.
func (r *Refresher) RunOnce(ctx context.Context) (Result, error) {
	symbols, err := r.symbols.ActiveSymbols(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list symbols: %w", err)
	}
	if len(symbols) == 0 {
		r.logger.Warn("no symbols to refresh")
		return Result{}, nil
	}

	var refreshed, failed atomic.Int64
	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for _, symbol := range symbols {
		symbol = strings.ToUpper(strings.TrimSpace(symbol))
		if symbol == "" {
			continue
		}
		symbol := symbol
		g.Go(func() error {
			if err := r.refresh(ctx, symbol); err != nil {
				failed.Add(1)
				r.logger.WithError(err).WithField("symbol", symbol).Warn("refresh failed")
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	res := Result{Refreshed: int(refreshed.Load()), Failed: int(failed.Load())}
	r.logger.WithFields(logrus.Fields{
		"refreshed": res.Refreshed,
		"failed":    res.Failed,
	}).Info("refresh run finished")
	return res, nil
}

func (r *Refresher) refresh(ctx context.Context, symbol string) error {
	fetchCtx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	view, err := r.chains.GetChainWithSummary(fetchCtx, symbol, "")
	if err != nil {
		return err
	}
	snap := options.NewSummarySnapshot(view.Chain, view.Summary, r.now())
	if err := r.sink.PublishSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("publish snapshot: %w", err)
	}
	return nil
}

// Start runs RunOnce on the configured schedule until ctx is cancelled.
// Runs that overlap a still-running one are skipped.
func (r *Refresher) Start(ctx context.Context) error {
	cronLogger := cron.PrintfLogger(r.logger)
	c := cron.New(
		cron.WithParser(config.CronParser),
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	_, err := c.AddFunc(r.cfg.Schedule, func() {
		if _, err := r.RunOnce(ctx); err != nil {
			r.logger.WithError(err).Error("refresh run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", r.cfg.Schedule, err)
	}

	c.Start()
	r.logger.WithField("schedule", r.cfg.Schedule).Info("refresher started")
	<-ctx.Done()
	<-c.Stop().Done()
	r.logger.Info("refresher stopped")
	return nil
}
