package broker

import (
	"context"
	"errors"
	"sync"
	"time"

	options "optionsdesk/internal/domain/entity/options"

	"github.com/sirupsen/logrus"
)

// BatchConfig controls batching thresholds for snapshot ingestion.
type BatchConfig struct {
	Size    int
	Timeout time.Duration
}

// SnapshotStore persists batches of summary snapshots.
type SnapshotStore interface {
	AddSnapshots(ctx context.Context, snapshots []options.SummarySnapshot) error
}

// BatchWriter buffers summary snapshots and flushes them to the store.
type BatchWriter struct {
	snapshots *batchBuffer[options.SummarySnapshot]
}

// NewBatchWriter configures a batch writer in front of store.
func NewBatchWriter(cfg BatchConfig, store SnapshotStore, logger *logrus.Logger) *BatchWriter {
	componentLogger := logger.WithField("component", "batch_writer")
	return &BatchWriter{
		snapshots: newBatchBuffer(cfg, store.AddSnapshots, componentLogger.WithField("entity", "summary_snapshot")),
	}
}

// Run sets the base context for asynchronous flush operations.
func (b *BatchWriter) Run(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	b.snapshots.setContext(ctx)
}

// Stop flushes the remaining buffer using the provided context. Snapshots
// added after Stop are rejected with ErrWriterStopped.
func (b *BatchWriter) Stop(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return b.snapshots.drain(ctx)
}

// Pending reports how many snapshots are waiting for the next flush.
func (b *BatchWriter) Pending() int {
	return b.snapshots.pending()
}

// AddSnapshot appends a snapshot to the buffer.
func (b *BatchWriter) AddSnapshot(snapshot *options.SummarySnapshot) error {
	if snapshot == nil {
		return errors.New("snapshot is nil")
	}
	copySnapshot := *snapshot
	return b.snapshots.enqueue(copySnapshot)
}

// PublishSnapshot lets the writer stand in for a broker publisher.
func (b *BatchWriter) PublishSnapshot(_ context.Context, snapshot options.SummarySnapshot) error {
	return b.snapshots.enqueue(snapshot)
}

var (
	ErrWriterNotRunning = errors.New("batch writer is not running")
	ErrWriterStopped    = errors.New("batch writer is stopped")
)

// batchBuffer collects items and hands them to flushFn when Size items are
// queued or Timeout has passed since the first queued item.
type batchBuffer[T any] struct {
	cfg     BatchConfig
	mu      sync.Mutex
	items   []T
	timer   *time.Timer
	flushFn func(context.Context, []T) error
	logger  *logrus.Entry
	ctx     context.Context
	stopped bool
}

func newBatchBuffer[T any](cfg BatchConfig, flushFn func(context.Context, []T) error, logger *logrus.Entry) *batchBuffer[T] {
	if cfg.Size <= 0 {
		cfg.Size = 1
	}
	return &batchBuffer[T]{
		cfg:     cfg,
		flushFn: flushFn,
		logger:  logger,
	}
}

func (bb *batchBuffer[T]) setContext(ctx context.Context) {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	bb.ctx = ctx
}

func (bb *batchBuffer[T]) pending() int {
	bb.mu.Lock()
	defer bb.mu.Unlock()
	return len(bb.items)
}

func (bb *batchBuffer[T]) enqueue(item T) error {
	bb.mu.Lock()
	switch {
	case bb.stopped:
		bb.mu.Unlock()
		return ErrWriterStopped
	case bb.ctx == nil:
		bb.mu.Unlock()
		return ErrWriterNotRunning
	}
	ctx := bb.ctx
	if err := ctx.Err(); err != nil {
		bb.mu.Unlock()
		return err
	}

	bb.items = append(bb.items, item)
	var batch []T
	if len(bb.items) >= bb.cfg.Size {
		batch = bb.takeBatchLocked()
	} else if bb.timer == nil && bb.cfg.Timeout > 0 {
		bb.timer = time.AfterFunc(bb.cfg.Timeout, bb.flushOnTimer)
	}
	bb.mu.Unlock()

	return bb.flush(ctx, batch)
}

func (bb *batchBuffer[T]) flushOnTimer() {
	bb.mu.Lock()
	ctx := bb.ctx
	batch := bb.takeBatchLocked()
	bb.mu.Unlock()

	if err := bb.flush(ctx, batch); err != nil {
		bb.logger.WithError(err).WithField("size", len(batch)).Warn("batch flush failed")
	}
}

func (bb *batchBuffer[T]) takeBatchLocked() []T {
	if bb.timer != nil {
		bb.timer.Stop()
		bb.timer = nil
	}
	if len(bb.items) == 0 {
		return nil
	}
	batch := make([]T, len(bb.items))
	copy(batch, bb.items)
	bb.items = bb.items[:0]
	return batch
}

func (bb *batchBuffer[T]) flush(ctx context.Context, batch []T) error {
	if len(batch) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	if err := bb.flushFn(ctx, batch); err != nil {
		return err
	}
	bb.logger.WithFields(logrus.Fields{
		"size":    len(batch),
		"took_ms": time.Since(start).Milliseconds(),
	}).Debug("flushed batch")
	return nil
}

// drain flushes what is queued and rejects later enqueues.
func (bb *batchBuffer[T]) drain(ctx context.Context) error {
	bb.mu.Lock()
	bb.stopped = true
	batch := bb.takeBatchLocked()
	bb.mu.Unlock()
	return bb.flush(ctx, batch)
}
