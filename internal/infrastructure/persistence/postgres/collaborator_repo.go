package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"prd-builder-api/internal/domain/entity"
	apperrors "prd-builder-api/pkg/errors"
)

const uniqueViolation = "23505"

// CollaboratorRepository implements repository.CollaboratorRepository.
type CollaboratorRepository struct {
	client *Client
}

// NewCollaboratorRepository creates a collaborator repository.
func NewCollaboratorRepository(client *Client) *CollaboratorRepository {
	return &CollaboratorRepository{client: client}
}

// Create inserts a membership row. The (project_id, user_id) unique
// index turns a duplicate add into a conflict error.
func (r *CollaboratorRepository) Create(ctx context.Context, collab *entity.Collaborator) error {
	ctx, span := tracer.Start(ctx, "postgres.CollaboratorRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		INSERT INTO project_collaborators (id, project_id, user_id, role, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := q.QueryRowContext(ctx, query,
		collab.ProjectID, collab.UserID, collab.Role,
	).Scan(&collab.ID, &collab.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return apperrors.New(apperrors.CodeConflict, "user is already a collaborator")
		}
		span.RecordError(err)
		return fmt.Errorf("failed to create collaborator: %w", err)
	}

	return nil
}

// ListByProject lists collaborators with their profiles joined.
func (r *CollaboratorRepository) ListByProject(ctx context.Context, projectID string) ([]*entity.Collaborator, error) {
	ctx, span := tracer.Start(ctx, "postgres.CollaboratorRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT c.id, c.project_id, c.user_id, c.role, c.created_at,
			p.id, p.email, p.full_name
		FROM project_collaborators c
		LEFT JOIN profiles p ON p.id = c.user_id
		WHERE c.project_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list collaborators: %w", err)
	}
	defer rows.Close()

	var collabs []*entity.Collaborator
	for rows.Next() {
		var collab entity.Collaborator
		var profileID, email, fullName sql.NullString

		if err := rows.Scan(
			&collab.ID, &collab.ProjectID, &collab.UserID, &collab.Role, &collab.CreatedAt,
			&profileID, &email, &fullName,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan collaborator: %w", err)
		}

		if profileID.Valid {
			collab.Profile = &entity.Profile{
				ID:       profileID.String,
				Email:    email.String,
				FullName: fullName.String,
			}
		}
		collabs = append(collabs, &collab)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate collaborators: %w", err)
	}

	return collabs, nil
}

// GetByProjectAndUser fetches one membership row, (nil, nil) when absent.
func (r *CollaboratorRepository) GetByProjectAndUser(ctx context.Context, projectID, userID string) (*entity.Collaborator, error) {
	ctx, span := tracer.Start(ctx, "postgres.CollaboratorRepository.GetByProjectAndUser")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, project_id, user_id, role, created_at
		FROM project_collaborators
		WHERE project_id = $1 AND user_id = $2
	`

	var collab entity.Collaborator
	err := q.QueryRowContext(ctx, query, projectID, userID).Scan(
		&collab.ID, &collab.ProjectID, &collab.UserID, &collab.Role, &collab.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get collaborator: %w", err)
	}

	return &collab, nil
}

// Delete removes a membership row.
func (r *CollaboratorRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.CollaboratorRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	_, err := q.ExecContext(ctx, `DELETE FROM project_collaborators WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete collaborator: %w", err)
	}

	return nil
}
