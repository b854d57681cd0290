package repository

import (
	"context"

	"prd-builder-api/internal/domain/entity"
)

// ProfileRepository reads user identities.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
}
