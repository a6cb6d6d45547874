package services

import (
	"context"

	"github.com/SscSPs/academy_fee_ledger/internal/dto"
)

// ActivitySvcFacade exposes the recent-activity feed.
type ActivitySvcFacade interface {
	ListRecentActivities(ctx context.Context, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error)
}
