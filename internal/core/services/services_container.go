package services

import (
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies. extra options (clock, activity publisher) are applied to every
// ledger service after the ones derived from cfg.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, extra ...Option) *portssvc.ServiceContainer {
	opts := []Option{
		WithLedgerPolicy(cfg.LedgerPolicy()),
		WithTxRetry(TxRetryConfig{
			MaxRetries:      cfg.MaxTxRetries,
			InitialInterval: cfg.TxRetryInitialInterval,
			MaxInterval:     cfg.TxRetryMaxInterval,
		}),
	}
	opts = append(opts, extra...)

	container := &portssvc.ServiceContainer{}

	// The reversal coordinator is shared: payouts and payout expenses both
	// reverse through it.
	reverser := NewReversalService(repos.TxManager, opts...)

	container.Student = NewStudentService(repos.StudentRepo, repos.TxManager, opts...)
	container.Fee = NewFeeService(repos.StudentRepo, repos.TxManager,
		WithFeeWorkers(cfg.FeeGenerationWorkers),
		WithFeeBaseOptions(opts...),
	)
	container.Payment = NewPaymentService(repos.StudentRepo, repos.IncomeRepo, repos.TxManager, opts...)
	container.Payout = NewPayoutService(repos.PayoutRepo, repos.TxManager, reverser, opts...)
	container.Expense = NewExpenseService(repos.ExpenseRepo, repos.TxManager, reverser, opts...)
	container.Activity = NewActivityService(repos.ActivityRepo)

	return container
}
