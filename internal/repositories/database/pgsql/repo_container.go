package pgsql

import (
	"context"
	"log/slog"

	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTransactionManager runs units of work inside serializable transactions.
type PgxTransactionManager struct {
	BaseRepository
}

var _ portsrepo.TransactionManager = (*PgxTransactionManager)(nil)

func newPgxTransactionManager(pool *pgxpool.Pool) *PgxTransactionManager {
	return &PgxTransactionManager{BaseRepository: newBaseRepository(pool, nil)}
}

// WithinTx begins a transaction, hands fn repositories bound to it, and
// commits when fn succeeds. Serialization failures surface as
// apperrors.ErrTxConflict so callers can retry the whole unit.
func (m *PgxTransactionManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := m.Rollback(ctx, tx); rbErr != nil {
			middleware.GetLoggerFromCtx(ctx).Warn("rollback failed", slog.String("error", rbErr.Error()))
		}
	}()

	repos := portsrepo.TxRepositories{
		Students:   newPgxStudentRepository(m.Pool, tx),
		Incomes:    newPgxIncomeRepository(m.Pool, tx),
		Expenses:   newPgxExpenseRepository(m.Pool, tx),
		Payouts:    newPgxPayoutRepository(m.Pool, tx),
		Activities: newPgxActivityRepository(m.Pool, tx),
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}

func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		StudentRepo:  newPgxStudentRepository(dbPool, nil),
		IncomeRepo:   newPgxIncomeRepository(dbPool, nil),
		ExpenseRepo:  newPgxExpenseRepository(dbPool, nil),
		PayoutRepo:   newPgxPayoutRepository(dbPool, nil),
		ActivityRepo: newPgxActivityRepository(dbPool, nil),
		TxManager:    newPgxTransactionManager(dbPool),
	}
}
