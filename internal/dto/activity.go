package dto

import "github.com/SscSPs/academy_fee_ledger/internal/core/domain"

// ListActivitiesParams defines query parameters for the activity feed.
type ListActivitiesParams struct {
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListActivitiesResponse wraps a page of the activity feed.
type ListActivitiesResponse struct {
	Activities []domain.Activity `json:"activities"`
	NextToken  *string           `json:"nextToken,omitempty"`
}
