package repositories

import (
	"context"
)

// TxRepositories groups repositories bound to a single open transaction.
// Every read and write made through it commits or rolls back together.
type TxRepositories struct {
	Students   StudentRepositoryFacade
	Incomes    IncomeRepositoryFacade
	Expenses   ExpenseRepositoryFacade
	Payouts    PayoutRepositoryFacade
	Activities ActivityRepositoryFacade
}

// TransactionManager defines methods for transaction management
type TransactionManager interface {
	// WithinTx runs fn inside one transaction. The transaction is committed if fn
	// returns nil and rolled back otherwise. If the store aborts the transaction
	// because of a concurrent write, the returned error wraps apperrors.ErrTxConflict
	// and the whole fn may be retried.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}
