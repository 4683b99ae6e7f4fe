package history

import (
	"context"
	"errors"
	"testing"

	options "optionsdesk/internal/domain/entity/options"
)

type recordingRepo struct {
	added  []options.SummarySnapshot
	symbol string
	limit  int
}

func (r *recordingRepo) AddSnapshots(_ context.Context, snapshots []options.SummarySnapshot) error {
	r.added = append(r.added, snapshots...)
	return nil
}

func (r *recordingRepo) GetLastSnapshots(_ context.Context, symbol string, limit int) ([]options.SummarySnapshot, error) {
	r.symbol, r.limit = symbol, limit
	return nil, nil
}

func (r *recordingRepo) Close() error { return nil }

func TestGetLastSnapshotsValidation(t *testing.T) {
	tests := []struct {
		name   string
		symbol string
		limit  int
		want   error
	}{
		{"empty symbol", " ", 10, ErrEmptySymbol},
		{"zero limit", "NIFTY", 0, ErrInvalidLimit},
		{"limit too large", "NIFTY", MaxLimit + 1, ErrInvalidLimit},
		{"ok", "NIFTY", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&recordingRepo{})
			_, err := svc.GetLastSnapshots(context.Background(), tt.symbol, tt.limit)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGetLastSnapshotsNormalizesSymbol(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)
	if _, err := svc.GetLastSnapshots(context.Background(), " banknifty", 5); err != nil {
		t.Fatalf("GetLastSnapshots: %v", err)
	}
	if repo.symbol != "BANKNIFTY" || repo.limit != 5 {
		t.Errorf("repo got %q/%d", repo.symbol, repo.limit)
	}
}

func TestAddSnapshots(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	if err := svc.AddSnapshot(ctx, nil); !errors.Is(err, ErrNilSnapshot) {
		t.Fatalf("err = %v, want ErrNilSnapshot", err)
	}
	if err := svc.AddSnapshots(ctx, nil); err != nil {
		t.Fatalf("AddSnapshots(nil): %v", err)
	}
	if err := svc.AddSnapshot(ctx, &options.SummarySnapshot{Symbol: "NIFTY"}); err != nil {
		t.Fatalf("AddSnapshot: %v", err)
	}
	if len(repo.added) != 1 {
		t.Errorf("added = %d, want 1", len(repo.added))
	}
}
