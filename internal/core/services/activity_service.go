package services

import (
	"context"

	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/academy_fee_ledger/internal/core/ports/services"
	"github.com/SscSPs/academy_fee_ledger/internal/dto"
)

type activityService struct {
	BaseService
	activityRepo portsrepo.ActivityReader
}

// NewActivityService creates the recent-activity feed service.
func NewActivityService(repo portsrepo.ActivityReader) portssvc.ActivitySvcFacade {
	return &activityService{activityRepo: repo}
}

var _ portssvc.ActivitySvcFacade = (*activityService)(nil)

func (s *activityService) ListRecentActivities(ctx context.Context, params dto.ListActivitiesParams) (*dto.ListActivitiesResponse, error) {
	activities, nextToken, err := s.activityRepo.ListActivities(ctx, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list activities")
		return nil, err
	}
	return &dto.ListActivitiesResponse{Activities: activities, NextToken: nextToken}, nil
}
