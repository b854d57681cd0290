package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
)

// VersionRepository implements repository.VersionRepository.
type VersionRepository struct {
	client *Client
}

// NewVersionRepository creates a version repository.
func NewVersionRepository(client *Client) *VersionRepository {
	return &VersionRepository{client: client}
}

// Create inserts a snapshot.
func (r *VersionRepository) Create(ctx context.Context, version *entity.ProjectVersion) error {
	ctx, span := tracer.Start(ctx, "postgres.VersionRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	formJSON, err := json.Marshal(version.FormData)
	if err != nil {
		return fmt.Errorf("failed to marshal form data: %w", err)
	}

	var createdBy sql.NullString
	if version.CreatedBy != "" {
		createdBy = sql.NullString{String: version.CreatedBy, Valid: true}
	}

	query := `
		INSERT INTO project_versions (id, project_id, form_data, change_type, created_by, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = q.QueryRowContext(ctx, query,
		version.ProjectID, formJSON, version.ChangeType, createdBy,
	).Scan(&version.ID, &version.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create version: %w", err)
	}

	return nil
}

// GetByID fetches one snapshot including its form data, (nil, nil) when
// absent.
func (r *VersionRepository) GetByID(ctx context.Context, id string) (*entity.ProjectVersion, error) {
	ctx, span := tracer.Start(ctx, "postgres.VersionRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, project_id, form_data, change_type, created_by, created_at
		FROM project_versions
		WHERE id = $1
	`

	var version entity.ProjectVersion
	var formJSON []byte
	var createdBy sql.NullString

	err := q.QueryRowContext(ctx, query, id).Scan(
		&version.ID, &version.ProjectID, &formJSON,
		&version.ChangeType, &createdBy, &version.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	if createdBy.Valid {
		version.CreatedBy = createdBy.String
	}
	if err := json.Unmarshal(formJSON, &version.FormData); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form data: %w", err)
	}

	return &version, nil
}

// ListByProject lists snapshot metadata newest first. Form data is not
// selected for list rows.
func (r *VersionRepository) ListByProject(ctx context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.ProjectVersion], error) {
	ctx, span := tracer.Start(ctx, "postgres.VersionRepository.ListByProject")
	defer span.End()

	page.Normalize()
	q := getQuerier(ctx, r.client.sqlDB)

	var total int64
	countQuery := `SELECT COUNT(*) FROM project_versions WHERE project_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, projectID).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count versions: %w", err)
	}

	query := `
		SELECT id, project_id, change_type, created_by, created_at
		FROM project_versions
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.QueryContext(ctx, query, projectID, page.Limit(), page.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	var versions []*entity.ProjectVersion
	for rows.Next() {
		var version entity.ProjectVersion
		var createdBy sql.NullString

		if err := rows.Scan(
			&version.ID, &version.ProjectID, &version.ChangeType,
			&createdBy, &version.CreatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}

		if createdBy.Valid {
			version.CreatedBy = createdBy.String
		}
		versions = append(versions, &version)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate versions: %w", err)
	}

	return repository.NewPagedResult(versions, total, page), nil
}
