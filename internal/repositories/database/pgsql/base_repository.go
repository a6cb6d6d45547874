package pgsql

import (
	"context"
	"errors"
	"net/http"

	"github.com/SscSPs/academy_fee_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SQLSTATE codes the repositories react to.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so that a repository
// can run against the pool or inside a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ querier = (*pgxpool.Pool)(nil)
	_ querier = (pgx.Tx)(nil)
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
	db   querier
}

func newBaseRepository(pool *pgxpool.Pool, db querier) BaseRepository {
	if db == nil {
		db = pool
	}
	return BaseRepository{Pool: pool, db: db}
}

// Begin starts a new serializable database transaction
func (r *BaseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return nil, wrapDBError("failed to begin transaction", err)
	}
	return tx, nil
}

// Commit commits a transaction
func (r *BaseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Commit(ctx); err != nil {
		return wrapDBError("failed to commit transaction", err)
	}
	return nil
}

// Rollback rolls back a transaction
func (r *BaseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

func pgErrorCode(err error) (string, string) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, pgErr.ConstraintName
	}
	return "", ""
}

// wrapDBError classifies a driver error. Serialization failures and deadlocks
// become retryable transaction conflicts; everything else is a storage error.
func wrapDBError(message string, err error) error {
	code, _ := pgErrorCode(err)
	switch code {
	case pgSerializationFailure, pgDeadlockDetected:
		return apperrors.NewTxConflictError(message, err)
	}
	return apperrors.NewStorageError(message, err)
}

func isUniqueViolation(err error, constraint string) bool {
	code, name := pgErrorCode(err)
	return code == pgUniqueViolation && (constraint == "" || name == constraint)
}
