package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// ProjectRepository persists projects. Reads that find no row return
// (nil, nil); callers translate that into a not-found error at the
// service layer.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	// ListAccessible returns projects the user owns or collaborates on,
	// newest first.
	ListAccessible(ctx context.Context, userID string, page Pagination) (*PagedResult[*entity.Project], error)
	// Update writes title, status and form data. It matches on the
	// project's current Revision and increments it; zero rows affected
	// means the caller's base was stale.
	Update(ctx context.Context, project *entity.Project) error
	// UpdateFormData overwrites only the form data blob, bumping the
	// revision unconditionally. Used by autosave, which is last-write-wins.
	UpdateFormData(ctx context.Context, id string, formData entity.FormData) error
	Delete(ctx context.Context, id string) error
}
