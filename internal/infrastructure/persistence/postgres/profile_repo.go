package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"prd-builder-api/internal/domain/entity"
)

// ProfileRepository implements repository.ProfileRepository.
type ProfileRepository struct {
	client *Client
}

// NewProfileRepository creates a profile repository.
func NewProfileRepository(client *Client) *ProfileRepository {
	return &ProfileRepository{client: client}
}

// GetByID fetches one profile, (nil, nil) when absent.
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `SELECT id, email, full_name, created_at FROM profiles WHERE id = $1`

	var profile entity.Profile
	var fullName sql.NullString

	err := q.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Email, &fullName, &profile.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.FullName = fullName.String
	return &profile, nil
}

// GetByEmail fetches one profile by email, case-insensitively.
func (r *ProfileRepository) GetByEmail(ctx context.Context, email string) (*entity.Profile, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProfileRepository.GetByEmail")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `SELECT id, email, full_name, created_at FROM profiles WHERE LOWER(email) = $1`

	var profile entity.Profile
	var fullName sql.NullString

	err := q.QueryRowContext(ctx, query, strings.ToLower(email)).Scan(
		&profile.ID, &profile.Email, &fullName, &profile.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.FullName = fullName.String
	return &profile, nil
}
