package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// ActivityRepository persists the audit trail.
type ActivityRepository interface {
	Create(ctx context.Context, activity *entity.Activity) error
	ListByProject(ctx context.Context, projectID string, page Pagination) (*PagedResult[*entity.Activity], error)
}
