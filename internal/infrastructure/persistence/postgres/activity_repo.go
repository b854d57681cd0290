package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
)

// ActivityRepository implements repository.ActivityRepository.
type ActivityRepository struct {
	client *Client
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(client *Client) *ActivityRepository {
	return &ActivityRepository{client: client}
}

// Create inserts an audit entry.
func (r *ActivityRepository) Create(ctx context.Context, activity *entity.Activity) error {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	detailsJSON, err := json.Marshal(activity.Details)
	if err != nil {
		return fmt.Errorf("failed to marshal details: %w", err)
	}

	var userID sql.NullString
	if activity.UserID != "" {
		userID = sql.NullString{String: activity.UserID, Valid: true}
	}

	query := `
		INSERT INTO project_activity (id, project_id, user_id, action, details, created_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err = q.QueryRowContext(ctx, query,
		activity.ProjectID, userID, activity.Action, detailsJSON,
	).Scan(&activity.ID, &activity.CreatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create activity: %w", err)
	}

	return nil
}

// ListByProject lists audit entries newest first.
func (r *ActivityRepository) ListByProject(ctx context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Activity], error) {
	ctx, span := tracer.Start(ctx, "postgres.ActivityRepository.ListByProject")
	defer span.End()

	page.Normalize()
	q := getQuerier(ctx, r.client.sqlDB)

	var total int64
	countQuery := `SELECT COUNT(*) FROM project_activity WHERE project_id = $1`
	if err := q.QueryRowContext(ctx, countQuery, projectID).Scan(&total); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}

	query := `
		SELECT id, project_id, user_id, action, details, created_at
		FROM project_activity
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := q.QueryContext(ctx, query, projectID, page.Limit(), page.Offset())
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	defer rows.Close()

	var activities []*entity.Activity
	for rows.Next() {
		var activity entity.Activity
		var userID sql.NullString
		var detailsJSON []byte

		if err := rows.Scan(
			&activity.ID, &activity.ProjectID, &userID,
			&activity.Action, &detailsJSON, &activity.CreatedAt,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}

		activity.UserID = userID.String
		if len(detailsJSON) > 0 {
			if err := json.Unmarshal(detailsJSON, &activity.Details); err != nil {
				span.RecordError(err)
				return nil, fmt.Errorf("failed to unmarshal activity details: %w", err)
			}
		}
		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate activity: %w", err)
	}

	return repository.NewPagedResult(activities, total, page), nil
}
