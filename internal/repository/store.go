package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Raj-Jadhav/shopping-Cart-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of database handles the repositories need, satisfied by
// both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store bundles the repositories behind a single injection point. InTx yields
// a Store whose repositories share one transaction; every step inside the
// callback commits or rolls back together.
type Store interface {
	Products() ProductRepository
	Carts() CartRepository
	Orders() OrderRepository
	Reporting() ReportingRepository
	InTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	db *sql.DB
	tx DBTX
}

// NewStore creates a Store backed by the given database handle.
func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db, tx: db}
}

func (s *sqlStore) Products() ProductRepository { return NewProductRepository(s.tx) }

func (s *sqlStore) Carts() CartRepository { return NewCartRepository(s.tx) }

func (s *sqlStore) Orders() OrderRepository { return NewOrderRepository(s.tx) }

func (s *sqlStore) Reporting() ReportingRepository { return NewReportingRepository(s.tx) }

// InTx runs fn inside a single database transaction. Nested calls join the
// transaction already in progress. Serialization and deadlock failures are
// surfaced as a retryable domain.ConflictError.
func (s *sqlStore) InTx(ctx context.Context, fn func(Store) error) error {
	if _, nested := s.tx.(*sql.Tx); nested {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(&sqlStore{db: s.db, tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return asConflict(err)
	}

	if err := tx.Commit(); err != nil {
		return asConflict(fmt.Errorf("failed to commit transaction: %w", err))
	}
	return nil
}

// asConflict maps Postgres serialization (40001) and deadlock (40P01)
// failures to a ConflictError; anything else passes through unchanged.
func asConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "40001" || pgErr.Code == "40P01" {
			return &domain.ConflictError{Message: "transaction conflict: " + pgErr.Message}
		}
	}
	return err
}
