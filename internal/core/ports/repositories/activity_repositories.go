package repositories

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
)

// ActivityReader defines read operations for the activity feed
type ActivityReader interface {
	// ListActivities returns activities newest first using token-based pagination.
	ListActivities(ctx context.Context, limit int, nextToken *string) ([]domain.Activity, *string, error)
}

// ActivityWriter defines write operations for the activity feed
type ActivityWriter interface {
	SaveActivity(ctx context.Context, activity domain.Activity) error
}

// ActivityRepositoryFacade combines all activity-related repository interfaces
type ActivityRepositoryFacade interface {
	ActivityReader
	ActivityWriter
}
