package history

import (
	"context"
	"errors"
	"fmt"

	options "optionsdesk/internal/domain/entity/options"
	"optionsdesk/internal/infrastructure/history/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const insertBatchSize = 200

var ErrNoBackend = errors.New("history backend not configured")

// Config selects the storage backend. DSN (Postgres) wins over SQLitePath.
type Config struct {
	DSN        string
	SQLitePath string
}

func (c Config) Enabled() bool {
	return c.DSN != "" || c.SQLitePath != ""
}

func (c Config) dialector() (gorm.Dialector, error) {
	switch {
	case c.DSN != "":
		return postgres.Open(c.DSN), nil
	case c.SQLitePath != "":
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, ErrNoBackend
	}
}

type Repository struct {
	db *gorm.DB
}

// NewRepository opens the configured backend and migrates the snapshot table.
func NewRepository(cfg Config) (*Repository, error) {
	dialector, err := cfg.dialector()
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := db.AutoMigrate(&models.SummarySnapshotModel{}); err != nil {
		return nil, fmt.Errorf("migrate history db: %w", err)
	}
	return &Repository{db: db}, nil
}

func (r *Repository) AddSnapshots(ctx context.Context, snapshots []options.SummarySnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	rows := make([]models.SummarySnapshotModel, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, models.FromSnapshot(s))
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, insertBatchSize).Error
}

func (r *Repository) GetLastSnapshots(ctx context.Context, symbol string, limit int) ([]options.SummarySnapshot, error) {
	var rows []models.SummarySnapshotModel
	err := r.db.WithContext(ctx).
		Where("symbol = ?", symbol).
		Order("captured_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]options.SummarySnapshot, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToSnapshot())
	}
	return out, nil
}

func (r *Repository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
