package history

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	options "optionsdesk/internal/domain/entity/options"

	"github.com/google/uuid"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(Config{SQLitePath: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func f(v float64) *float64 { return &v }

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2025, 6, 20, 9, 15, 0, 0, time.UTC)

	var batch []options.SummarySnapshot
	for i := 0; i < 3; i++ {
		batch = append(batch, options.SummarySnapshot{
			ID:          uuid.New(),
			Symbol:      "NIFTY",
			Expiry:      "2025-06-26",
			StrikeCount: 40 + i,
			CapturedAt:  base.Add(time.Duration(i) * time.Minute),
			Summary: options.ChainSummary{
				ATMStrike: f(24000),
				PCR:       f(1.1),
				IVStats:   &options.IVStats{Avg: 14.2, Min: 10, Max: 30},
			},
		})
	}
	batch = append(batch, options.SummarySnapshot{ID: uuid.New(), Symbol: "BANKNIFTY", CapturedAt: base})

	if err := repo.AddSnapshots(ctx, batch); err != nil {
		t.Fatalf("AddSnapshots: %v", err)
	}

	got, err := repo.GetLastSnapshots(ctx, "NIFTY", 2)
	if err != nil {
		t.Fatalf("GetLastSnapshots: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].StrikeCount != 42 || got[1].StrikeCount != 41 {
		t.Errorf("order = %d,%d, want newest first", got[0].StrikeCount, got[1].StrikeCount)
	}
	if got[0].ID != batch[2].ID {
		t.Errorf("id = %s, want %s", got[0].ID, batch[2].ID)
	}
	s := got[0].Summary
	if s.ATMStrike == nil || *s.ATMStrike != 24000 || s.PCR == nil || *s.PCR != 1.1 {
		t.Errorf("summary = %+v", s)
	}
	if s.IVStats == nil || s.IVStats.Max != 30 {
		t.Errorf("iv stats = %+v", s.IVStats)
	}
	if s.IVSkew != nil {
		t.Errorf("iv skew = %v, want nil", *s.IVSkew)
	}
}

func TestRepositoryEmpty(t *testing.T) {
	repo := newTestRepository(t)
	if err := repo.AddSnapshots(context.Background(), nil); err != nil {
		t.Fatalf("AddSnapshots(nil): %v", err)
	}
	got, err := repo.GetLastSnapshots(context.Background(), "NIFTY", 10)
	if err != nil {
		t.Fatalf("GetLastSnapshots: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestNewRepositoryRequiresBackend(t *testing.T) {
	if _, err := NewRepository(Config{}); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("err = %v, want ErrNoBackend", err)
	}
}
