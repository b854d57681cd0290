package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// CollaboratorRepository persists project membership.
type CollaboratorRepository interface {
	// Create inserts a collaborator row. Adding the same user to the
	// same project twice returns a conflict error.
	Create(ctx context.Context, collab *entity.Collaborator) error
	// ListByProject returns collaborators with their profiles joined.
	ListByProject(ctx context.Context, projectID string) ([]*entity.Collaborator, error)
	GetByProjectAndUser(ctx context.Context, projectID, userID string) (*entity.Collaborator, error)
	Delete(ctx context.Context, id string) error
}
