package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// CommentRepository persists project comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	// ListByProject returns comments oldest first with author profiles
	// joined; fieldPath, when non-empty, filters to one anchor.
	ListByProject(ctx context.Context, projectID, fieldPath string) ([]*entity.Comment, error)
	// Update patches the content and/or resolved flag; nil fields are
	// left untouched.
	Update(ctx context.Context, id string, content *string, resolved *bool) error
	Delete(ctx context.Context, id string) error
}
