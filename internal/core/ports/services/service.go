package services

import (
	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Student  StudentSvcFacade
	Fee      FeeSvcFacade
	Payment  PaymentSvcFacade
	Payout   PayoutSvcFacade
	Expense  ExpenseSvcFacade
	Activity ActivitySvcFacade
}

// ActivityPublisher forwards committed activities to an external sink such
// as product analytics. Implementations must not block.
type ActivityPublisher interface {
	Publish(activity domain.Activity)
}
