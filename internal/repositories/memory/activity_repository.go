package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/academy_fee_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/academy_fee_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/academy_fee_ledger/internal/utils/pagination"
)

type activityRepository struct {
	run runner
}

var _ portsrepo.ActivityRepositoryFacade = (*activityRepository)(nil)

func (r *activityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	return r.run(func(tx *txState) error {
		tx.activities.put(activity.ActivityID, activity, true)
		return nil
	})
}

func (r *activityRepository) ListActivities(ctx context.Context, limit int, nextToken *string) ([]domain.Activity, *string, error) {
	limit = pagination.NormalizeLimit(limit)
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidPageToken, err)
		}
		cursor = &c
	}

	var rows []domain.Activity
	err := r.run(func(tx *txState) error {
		rows = tx.activities.scan()
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].CreatedAt.After(rows[j].CreatedAt)
		}
		return rows[i].ActivityID > rows[j].ActivityID
	})

	page := make([]domain.Activity, 0, limit)
	for _, a := range rows {
		if cursor != nil && !cursor.Follows(a.CreatedAt, a.CreatedAt, a.ActivityID) {
			continue
		}
		page = append(page, a)
	}
	if len(page) <= limit {
		return page, nil, nil
	}
	page = page[:limit]
	last := page[len(page)-1]
	token := pagination.EncodeCursor(pagination.Cursor{SortKey: last.CreatedAt, CreatedAt: last.CreatedAt, ID: last.ActivityID})
	return page, &token, nil
}
