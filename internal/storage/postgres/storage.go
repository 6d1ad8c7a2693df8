package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/polkiloo/campusfood/internal/domain/repository"
)

// querier is satisfied by both the pool and an open transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type pgxPool interface {
	querier
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

const uniqueViolation = "23505"

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *zap.Logger
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *zap.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories bound to the pool.
func (s *Storage) Students() repository.StudentRepository { return &studentRepository{db: s.pool} }
func (s *Storage) Vendors() repository.VendorRepository   { return &vendorRepository{db: s.pool} }
func (s *Storage) Menu() repository.MenuRepository         { return &menuRepository{db: s.pool} }
func (s *Storage) Orders() repository.OrderRepository      { return &orderRepository{db: s.pool} }
func (s *Storage) Reviews() repository.ReviewRepository    { return &reviewRepository{db: s.pool} }
func (s *Storage) Events() repository.EventRepository      { return &eventRepository{db: s.pool} }

// txFactory hands out repositories sharing one transaction.
type txFactory struct {
	tx pgx.Tx
}

func (f txFactory) Students() repository.StudentRepository { return &studentRepository{db: f.tx} }
func (f txFactory) Vendors() repository.VendorRepository   { return &vendorRepository{db: f.tx} }
func (f txFactory) Menu() repository.MenuRepository         { return &menuRepository{db: f.tx} }
func (f txFactory) Orders() repository.OrderRepository      { return &orderRepository{db: f.tx} }
func (f txFactory) Reviews() repository.ReviewRepository    { return &reviewRepository{db: f.tx} }
func (f txFactory) Events() repository.EventRepository      { return &eventRepository{db: f.tx} }

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
            id BIGSERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            phone TEXT NOT NULL DEFAULT '',
            department_code TEXT NOT NULL,
            admission_year TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS vendors (
            id BIGSERIAL PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            stall_name TEXT NOT NULL,
            description TEXT NOT NULL DEFAULT '',
            phone TEXT NOT NULL DEFAULT '',
            is_open BOOLEAN NOT NULL DEFAULT TRUE,
            opening_hours TEXT NOT NULL DEFAULT '09:00',
            closing_hours TEXT NOT NULL DEFAULT '17:00',
            review_positive INTEGER NOT NULL DEFAULT 0,
            review_neutral INTEGER NOT NULL DEFAULT 0,
            review_negative INTEGER NOT NULL DEFAULT 0,
            review_total INTEGER NOT NULL DEFAULT 0,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            CHECK (review_total = review_positive + review_neutral + review_negative)
        )`,
		`CREATE TABLE IF NOT EXISTS menu_items (
            id BIGSERIAL PRIMARY KEY,
            vendor_id BIGINT NOT NULL REFERENCES vendors(id),
            name TEXT NOT NULL,
            price DOUBLE PRECISION NOT NULL CHECK (price >= 0),
            description TEXT NOT NULL DEFAULT '',
            image_url TEXT NOT NULL DEFAULT '',
            category TEXT NOT NULL DEFAULT 'General',
            is_available BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id BIGSERIAL PRIMARY KEY,
            student_id BIGINT NOT NULL REFERENCES students(id),
            vendor_id BIGINT NOT NULL REFERENCES vendors(id),
            items JSONB NOT NULL,
            total_price DOUBLE PRECISION NOT NULL CHECK (total_price >= 0),
            status TEXT NOT NULL,
            transaction_id TEXT NOT NULL,
            rejection_reason TEXT NOT NULL DEFAULT '',
            is_reviewed BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reviews (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT UNIQUE NOT NULL REFERENCES orders(id),
            student_id BIGINT NOT NULL REFERENCES students(id),
            vendor_id BIGINT NOT NULL REFERENCES vendors(id),
            rating SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
            comment TEXT NOT NULL,
            sentiment TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_events (
            id BIGSERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL,
            student_id BIGINT NOT NULL,
            vendor_id BIGINT NOT NULL,
            type TEXT NOT NULL,
            status TEXT NOT NULL DEFAULT '',
            reason TEXT NOT NULL DEFAULT '',
            occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            claimed_at TIMESTAMPTZ,
            published_at TIMESTAMPTZ
        )`,
		`CREATE INDEX IF NOT EXISTS idx_menu_items_vendor ON menu_items(vendor_id, category, name)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_student ON orders(student_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_vendor ON orders(vendor_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_reviews_vendor ON reviews(vendor_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_order_events_unpublished ON order_events(id) WHERE published_at IS NULL`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// WithinTransaction runs fn with repositories bound to a single transaction.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(repository.Factory) error) error {
	return s.withinTx(ctx, func(tx pgx.Tx) error {
		return fn(txFactory{tx: tx})
	})
}

func (s *Storage) withinTx(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				s.logger.Warn("rollback failed", zap.Error(rbErr))
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

type scanner interface {
	Scan(dest ...any) error
}
