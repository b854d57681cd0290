package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
	apperrors "prd-builder-api/pkg/errors"
)

// ProjectRepository implements repository.ProjectRepository.
type ProjectRepository struct {
	client *Client
}

// NewProjectRepository creates a project repository.
func NewProjectRepository(client *Client) *ProjectRepository {
	return &ProjectRepository{client: client}
}

// Create inserts a project and fills in the generated fields.
func (r *ProjectRepository) Create(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	formJSON, err := json.Marshal(project.FormData)
	if err != nil {
		return fmt.Errorf("failed to marshal form data: %w", err)
	}

	query := `
		INSERT INTO projects (id, owner_id, title, status, form_data, revision, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, 1, NOW(), NOW())
		RETURNING id, revision, created_at, updated_at
	`

	err = q.QueryRowContext(ctx, query,
		project.OwnerID, project.Title, project.Status, formJSON,
	).Scan(&project.ID, &project.Revision, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// GetByID fetches one project, (nil, nil) when absent.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, owner_id, title, status, form_data, revision, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project entity.Project
	var formJSON []byte

	err := q.QueryRowContext(ctx, query, id).Scan(
		&project.ID, &project.OwnerID, &project.Title, &project.Status,
		&formJSON, &project.Revision, &project.CreatedAt, &project.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	if project.FormData, err = decodeFormData(formJSON); err != nil {
		span.RecordError(err)
		return nil, err
	}

	return &project, nil
}

// ListAccessible lists projects the user owns or collaborates on.
func (r *ProjectRepository) ListAccessible(ctx context.Context, userID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.ListAccessible")
	defer span.End()

	page.Normalize()
	q := getQuerier(ctx, r.client.sqlDB)

	whereClause := `
		owner_id = $1
		OR id IN (SELECT project_id FROM project_collaborators WHERE user_id = $1)
	`

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM projects WHERE %s`, whereClause)
	if err := q.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, owner_id, title, status, form_data, revision, created_at, updated_at
		FROM projects
		WHERE %s
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`, whereClause)

	rows, err := q.QueryContext(ctx, query, userID, page.Limit(), page.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*entity.Project
	for rows.Next() {
		var project entity.Project
		var formJSON []byte

		if err := rows.Scan(
			&project.ID, &project.OwnerID, &project.Title, &project.Status,
			&formJSON, &project.Revision, &project.CreatedAt, &project.UpdatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}

		if project.FormData, err = decodeFormData(formJSON); err != nil {
			span.RecordError(err)
			return nil, err
		}
		projects = append(projects, &project)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return repository.NewPagedResult(projects, total, page), nil
}

// Update writes title, status and form data, matching on the caller's
// revision. Zero rows affected means the base was stale and the caller
// gets a conflict.
func (r *ProjectRepository) Update(ctx context.Context, project *entity.Project) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Update")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	formJSON, err := json.Marshal(project.FormData)
	if err != nil {
		return fmt.Errorf("failed to marshal form data: %w", err)
	}

	query := `
		UPDATE projects
		SET title = $1, status = $2, form_data = $3, revision = revision + 1, updated_at = NOW()
		WHERE id = $4 AND revision = $5
		RETURNING revision, updated_at
	`

	err = q.QueryRowContext(ctx, query,
		project.Title, project.Status, formJSON, project.ID, project.Revision,
	).Scan(&project.Revision, &project.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return apperrors.New(apperrors.CodeConflict, "project was modified concurrently")
		}
		span.RecordError(err)
		return fmt.Errorf("failed to update project: %w", err)
	}

	return nil
}

// UpdateFormData overwrites the form data blob unconditionally.
func (r *ProjectRepository) UpdateFormData(ctx context.Context, id string, formData entity.FormData) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.UpdateFormData")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	formJSON, err := json.Marshal(formData)
	if err != nil {
		return fmt.Errorf("failed to marshal form data: %w", err)
	}

	query := `
		UPDATE projects
		SET form_data = $1, revision = revision + 1, updated_at = NOW()
		WHERE id = $2
	`

	result, err := q.ExecContext(ctx, query, formJSON, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update form data: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return apperrors.ErrProjectNotFound
	}

	return nil
}

// Delete removes a project; versions, collaborators, comments and
// activity cascade at the schema level.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ProjectRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	_, err := q.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

// decodeFormData parses a form_data column. NULL and empty values map
// to an empty form; anything unparseable is an error rather than a
// silently empty document.
func decodeFormData(raw []byte) (entity.FormData, error) {
	if len(raw) == 0 {
		return entity.FormData{}, nil
	}

	var form entity.FormData
	if err := json.Unmarshal(raw, &form); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form data: %w", err)
	}
	if form == nil {
		form = entity.FormData{}
	}
	return form, nil
}
