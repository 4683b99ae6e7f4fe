package underlyings

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"time"

	domain "optionsdesk/internal/domain/entity/underlyings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrUnderlyingNotFound = errors.New("underlying not found")
	ErrUnderlyingExists   = errors.New("underlying already exists")
)

const uniqueViolation = "23505"

//go:embed schema.sql
var schemaSQL string

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(ctx context.Context, dsn string) (*Repository, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}
	return &Repository{pool: pool}, nil
}

func (r *Repository) Close() {
	if r == nil || r.pool == nil {
		return
	}
	r.pool.Close()
}

// Migrate creates the underlyings table when it does not exist.
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate underlyings: %w", err)
	}
	return nil
}

const selectColumns = `uid, symbol, exchange, kind, active, created_at, updated_at`

func (r *Repository) CreateUnderlying(ctx context.Context, underlying *domain.Underlying) error {
	return r.createUnderlyingWith(ctx, r.pool, underlying)
}

func (r *Repository) GetUnderlying(ctx context.Context, uid uuid.UUID) (*domain.Underlying, error) {
	query := `SELECT ` + selectColumns + ` FROM underlyings WHERE uid = $1`
	return r.getOne(ctx, query, uid)
}

func (r *Repository) GetUnderlyingBySymbol(ctx context.Context, exchange, symbol string) (*domain.Underlying, error) {
	query := `SELECT ` + selectColumns + ` FROM underlyings WHERE exchange = $1 AND symbol = $2`
	return r.getOne(ctx, query, exchange, symbol)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...interface{}) (*domain.Underlying, error) {
	row := r.pool.QueryRow(ctx, query, args...)
	underlying := &domain.Underlying{}
	if err := scanUnderlyingInto(row, underlying); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnderlyingNotFound
		}
		return nil, err
	}
	return underlying, nil
}

func (r *Repository) ListUnderlyings(ctx context.Context, activeOnly bool) ([]domain.Underlying, error) {
	query := `SELECT ` + selectColumns + ` FROM underlyings`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY exchange, symbol`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Underlying
	for rows.Next() {
		var u domain.Underlying
		if err := scanUnderlyingInto(rows, &u); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *Repository) UpdateUnderlying(ctx context.Context, underlying *domain.Underlying) error {
	return r.updateUnderlyingWith(ctx, r.pool, underlying)
}

func (r *Repository) DeleteUnderlying(ctx context.Context, uid uuid.UUID) error {
	return r.deleteUnderlyingWith(ctx, r.pool, uid)
}

// UpsertUnderlyings inserts or refreshes a batch in one transaction,
// keyed on (exchange, symbol).
func (r *Repository) UpsertUnderlyings(ctx context.Context, list []domain.Underlying) error {
	if len(list) == 0 {
		return nil
	}
	return r.withTx(ctx, func(tx pgx.Tx) error {
		for i := range list {
			if err := r.upsertUnderlyingWith(ctx, tx, &list[i]); err != nil {
				return fmt.Errorf("upsert %s: %w", list[i].ScanTicker(), err)
			}
		}
		return nil
	})
}

func scanUnderlyingInto(row pgx.Row, underlying *domain.Underlying) error {
	var kind string
	if err := row.Scan(
		&underlying.UID,
		&underlying.Symbol,
		&underlying.Exchange,
		&kind,
		&underlying.Active,
		&underlying.CreatedAt,
		&underlying.UpdatedAt,
	); err != nil {
		return err
	}
	underlying.Kind = domain.Kind(kind)
	return nil
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type commandTagExecutor interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func (r *Repository) withTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrUnderlyingExists
	}
	return err
}

func (r *Repository) createUnderlyingWith(ctx context.Context, runner queryRower, underlying *domain.Underlying) error {
	if underlying == nil {
		return errors.New("underlying is nil")
	}
	if underlying.UID == uuid.Nil {
		underlying.UID = uuid.New()
	}
	now := time.Now().UTC()
	if underlying.CreatedAt.IsZero() {
		underlying.CreatedAt = now
	}
	underlying.UpdatedAt = now

	query := `
		INSERT INTO underlyings (uid, symbol, exchange, kind, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
		RETURNING ` + selectColumns

	row := runner.QueryRow(ctx, query,
		underlying.UID,
		underlying.Symbol,
		underlying.Exchange,
		underlying.Kind.String(),
		underlying.Active,
		underlying.CreatedAt,
		underlying.UpdatedAt,
	)
	return mapWriteError(scanUnderlyingInto(row, underlying))
}

func (r *Repository) upsertUnderlyingWith(ctx context.Context, runner queryRower, underlying *domain.Underlying) error {
	if underlying.UID == uuid.Nil {
		underlying.UID = uuid.New()
	}
	now := time.Now().UTC()
	query := `
		INSERT INTO underlyings (uid, symbol, exchange, kind, active, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$6)
		ON CONFLICT (exchange, symbol) DO UPDATE
		SET kind=EXCLUDED.kind,
			active=EXCLUDED.active,
			updated_at=EXCLUDED.updated_at
		RETURNING ` + selectColumns

	row := runner.QueryRow(ctx, query,
		underlying.UID,
		underlying.Symbol,
		underlying.Exchange,
		underlying.Kind.String(),
		underlying.Active,
		now,
	)
	return scanUnderlyingInto(row, underlying)
}

func (r *Repository) updateUnderlyingWith(ctx context.Context, runner queryRower, underlying *domain.Underlying) error {
	if underlying == nil {
		return errors.New("underlying is nil")
	}
	if underlying.UID == uuid.Nil {
		return errors.New("underlying UID is required")
	}
	underlying.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE underlyings
		SET symbol=$2,
			exchange=$3,
			kind=$4,
			active=$5,
			updated_at=$6
		WHERE uid=$1
		RETURNING ` + selectColumns

	row := runner.QueryRow(ctx, query,
		underlying.UID,
		underlying.Symbol,
		underlying.Exchange,
		underlying.Kind.String(),
		underlying.Active,
		underlying.UpdatedAt,
	)

	if err := scanUnderlyingInto(row, underlying); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrUnderlyingNotFound
		}
		return mapWriteError(err)
	}
	return nil
}

func (r *Repository) deleteUnderlyingWith(ctx context.Context, execer commandTagExecutor, uid uuid.UUID) error {
	const query = `DELETE FROM underlyings WHERE uid=$1`
	cmdTag, err := execer.Exec(ctx, query, uid)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrUnderlyingNotFound
	}
	return nil
}
