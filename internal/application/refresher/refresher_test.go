package refresher

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	optionsvc "optionsdesk/internal/application/service/options"
	options "optionsdesk/internal/domain/entity/options"

	"github.com/sirupsen/logrus"
)

type fakeChains struct {
	failing  map[string]bool
	inFlight atomic.Int32
	maxSeen  atomic.Int32
}

func (f *fakeChains) GetChainWithSummary(_ context.Context, symbol, _ string) (*optionsvc.ChainView, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	if f.failing[symbol] {
		return nil, errors.New("upstream down")
	}
	strike := 100.0
	return &optionsvc.ChainView{
		Chain: &options.OptionChain{
			Symbol:  symbol,
			Expiry:  "2025-06-26",
			Strikes: []options.OptionStrikeRow{{Strike: strike}},
		},
		Summary: options.ChainSummary{ATMStrike: &strike},
	}, nil
}

type recordingSink struct {
	mu    sync.Mutex
	snaps []options.SummarySnapshot
}

func (s *recordingSink) PublishSnapshot(_ context.Context, snap options.SummarySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps = append(s.snaps, snap)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRunOnce(t *testing.T) {
	chains := &fakeChains{failing: map[string]bool{"BAD": true}}
	sink := &recordingSink{}
	symbols := StaticSymbols{"nifty", "BANKNIFTY", "BAD", " ", "FINNIFTY", "RELIANCE"}
	r, err := New(Config{Concurrency: 2, Timeout: time.Second}, symbols, chains, sink, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fixed := time.Date(2025, 6, 20, 10, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	res, err := r.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if res.Refreshed != 4 || res.Failed != 1 {
		t.Errorf("result = %+v, want 4 refreshed 1 failed", res)
	}
	if peak := chains.maxSeen.Load(); peak > 2 {
		t.Errorf("max concurrency = %d, want <= 2", peak)
	}

	var got []string
	for _, s := range sink.snaps {
		got = append(got, s.Symbol)
		if !s.CapturedAt.Equal(fixed) || s.StrikeCount != 1 || s.Expiry != "2025-06-26" {
			t.Errorf("snapshot = %+v", s)
		}
	}
	sort.Strings(got)
	want := []string{"BANKNIFTY", "FINNIFTY", "NIFTY", "RELIANCE"}
	if len(got) != len(want) {
		t.Fatalf("symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("symbols = %v, want %v", got, want)
		}
	}
}

func TestRunOnceKeepsExchange(t *testing.T) {
	sink := &recordingSink{}
	symbols := StaticSymbols{"BSE:SBIN", "NSE:SBIN"}
	r, err := New(Config{Concurrency: 2}, symbols, &fakeChains{}, sink, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := r.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if res.Refreshed != 2 {
		t.Fatalf("result = %+v, want 2 refreshed", res)
	}

	var got []string
	for _, s := range sink.snaps {
		got = append(got, s.Symbol)
	}
	sort.Strings(got)
	if len(got) != 2 || got[0] != "BSE:SBIN" || got[1] != "NSE:SBIN" {
		t.Errorf("symbols = %v, want [BSE:SBIN NSE:SBIN]", got)
	}
}

func TestQualifiedSymbols(t *testing.T) {
	got := QualifiedSymbols([]string{"nifty", " bse:sbin ", "", "BANKNIFTY"}, "nse")
	want := StaticSymbols{"NSE:NIFTY", "BSE:SBIN", "NSE:BANKNIFTY"}
	if len(got) != len(want) {
		t.Fatalf("symbols = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("symbols = %v, want %v", got, want)
		}
	}
}

func TestNewWithoutLogger(t *testing.T) {
	r, err := New(Config{}, StaticSymbols{}, &fakeChains{}, &recordingSink{}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.logger == nil {
		t.Fatal("logger not defaulted")
	}
}

type failingLister struct{}

func (failingLister) ActiveSymbols(context.Context) ([]string, error) {
	return nil, errors.New("registry down")
}

func TestRunOnceListError(t *testing.T) {
	r, err := New(Config{}, failingLister{}, &fakeChains{}, &recordingSink{}, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := r.RunOnce(context.Background()); err == nil {
		t.Fatal("expected list error")
	}
}

func TestStartRunsOnSchedule(t *testing.T) {
	sink := &recordingSink{}
	r, err := New(Config{Schedule: "@every 1s", Concurrency: 1, Timeout: time.Second}, StaticSymbols{"NIFTY"}, &fakeChains{}, sink, quietLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()
	if err := r.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	sink.mu.Lock()
	defer sink.mu.Unlock()
	if len(sink.snaps) == 0 {
		t.Fatal("no snapshot published on schedule")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	r, _ := New(Config{Schedule: "every now and then"}, StaticSymbols{"NIFTY"}, &fakeChains{}, &recordingSink{}, quietLogger())
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected schedule error")
	}
}
