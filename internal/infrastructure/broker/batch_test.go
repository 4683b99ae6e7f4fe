package broker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	options "optionsdesk/internal/domain/entity/options"

	"github.com/sirupsen/logrus"
)

type memoryStore struct {
	mu      sync.Mutex
	batches [][]options.SummarySnapshot
	err     error
}

func (m *memoryStore) AddSnapshots(_ context.Context, snapshots []options.SummarySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.batches = append(m.batches, snapshots)
	return nil
}

func (m *memoryStore) sizes() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, 0, len(m.batches))
	for _, b := range m.batches {
		out = append(out, len(b))
	}
	return out
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func snapshot(symbol string) *options.SummarySnapshot {
	return &options.SummarySnapshot{Symbol: symbol}
}

func TestBatchWriterFlushesOnSize(t *testing.T) {
	store := &memoryStore{}
	w := NewBatchWriter(BatchConfig{Size: 2}, store, quietLogger())
	w.Run(context.Background())

	for _, sym := range []string{"A", "B", "C"} {
		if err := w.AddSnapshot(snapshot(sym)); err != nil {
			t.Fatalf("AddSnapshot(%s): %v", sym, err)
		}
	}
	if got := store.sizes(); len(got) != 1 || got[0] != 2 {
		t.Fatalf("batches = %v, want [2]", got)
	}
	if w.Pending() != 1 {
		t.Errorf("pending = %d, want 1", w.Pending())
	}

	if err := w.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if got := store.sizes(); len(got) != 2 || got[1] != 1 {
		t.Fatalf("batches after stop = %v, want [2 1]", got)
	}
	if err := w.AddSnapshot(snapshot("D")); !errors.Is(err, ErrWriterStopped) {
		t.Errorf("err after stop = %v, want ErrWriterStopped", err)
	}
}

func TestBatchWriterFlushesOnTimeout(t *testing.T) {
	store := &memoryStore{}
	w := NewBatchWriter(BatchConfig{Size: 100, Timeout: 20 * time.Millisecond}, store, quietLogger())
	w.Run(context.Background())

	if err := w.PublishSnapshot(context.Background(), *snapshot("A")); err != nil {
		t.Fatalf("PublishSnapshot: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(store.sizes()) == 1 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := store.sizes(); len(got) != 1 || got[0] != 1 {
		t.Fatalf("batches = %v, want [1]", got)
	}
}

func TestBatchWriterNotRunning(t *testing.T) {
	w := NewBatchWriter(BatchConfig{Size: 1}, &memoryStore{}, quietLogger())
	if err := w.AddSnapshot(snapshot("A")); !errors.Is(err, ErrWriterNotRunning) {
		t.Fatalf("err = %v, want ErrWriterNotRunning", err)
	}
	if err := w.AddSnapshot(nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestBatchWriterPropagatesStoreError(t *testing.T) {
	boom := errors.New("db down")
	w := NewBatchWriter(BatchConfig{Size: 1}, &memoryStore{err: boom}, quietLogger())
	w.Run(context.Background())
	if err := w.AddSnapshot(snapshot("A")); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
