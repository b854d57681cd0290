package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// VersionRepository persists project snapshots.
type VersionRepository interface {
	Create(ctx context.Context, version *entity.ProjectVersion) error
	GetByID(ctx context.Context, id string) (*entity.ProjectVersion, error)
	// ListByProject returns snapshot metadata newest first. FormData is
	// omitted from list rows to keep responses small.
	ListByProject(ctx context.Context, projectID string, page Pagination) (*PagedResult[*entity.ProjectVersion], error)
}
