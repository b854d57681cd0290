package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"prd-builder-api/internal/domain/entity"
)

// CommentRepository implements repository.CommentRepository.
type CommentRepository struct {
	client *Client
}

// NewCommentRepository creates a comment repository.
func NewCommentRepository(client *Client) *CommentRepository {
	return &CommentRepository{client: client}
}

// Create inserts a comment.
func (r *CommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Create")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	var fieldPath, parentID sql.NullString
	if comment.FieldPath != "" {
		fieldPath = sql.NullString{String: comment.FieldPath, Valid: true}
	}
	if comment.ParentCommentID != "" {
		parentID = sql.NullString{String: comment.ParentCommentID, Valid: true}
	}

	query := `
		INSERT INTO comments (id, project_id, field_path, content, author_id, parent_comment_id, resolved, created_at, updated_at)
		VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, FALSE, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query,
		comment.ProjectID, fieldPath, comment.Content, comment.AuthorID, parentID,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)

	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetByID fetches one comment, (nil, nil) when absent.
func (r *CommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.GetByID")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT id, project_id, field_path, content, author_id, parent_comment_id, resolved, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment entity.Comment
	var fieldPath, parentID sql.NullString

	err := q.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.ProjectID, &fieldPath, &comment.Content,
		&comment.AuthorID, &parentID, &comment.Resolved,
		&comment.CreatedAt, &comment.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	comment.FieldPath = fieldPath.String
	comment.ParentCommentID = parentID.String

	return &comment, nil
}

// ListByProject lists comments oldest first with author profiles joined.
func (r *CommentRepository) ListByProject(ctx context.Context, projectID, fieldPath string) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.ListByProject")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	query := `
		SELECT c.id, c.project_id, c.field_path, c.content, c.author_id, c.parent_comment_id,
			c.resolved, c.created_at, c.updated_at,
			p.id, p.email, p.full_name
		FROM comments c
		LEFT JOIN profiles p ON p.id = c.author_id
		WHERE c.project_id = $1
	`
	args := []interface{}{projectID}
	if fieldPath != "" {
		query += ` AND c.field_path = $2`
		args = append(args, fieldPath)
	}
	query += ` ORDER BY c.created_at ASC`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		var comment entity.Comment
		var cFieldPath, parentID, profileID, email, fullName sql.NullString

		if err := rows.Scan(
			&comment.ID, &comment.ProjectID, &cFieldPath, &comment.Content,
			&comment.AuthorID, &parentID, &comment.Resolved,
			&comment.CreatedAt, &comment.UpdatedAt,
			&profileID, &email, &fullName,
		); err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}

		comment.FieldPath = cFieldPath.String
		comment.ParentCommentID = parentID.String
		if profileID.Valid {
			comment.Profile = &entity.Profile{
				ID:       profileID.String,
				Email:    email.String,
				FullName: fullName.String,
			}
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}

	return comments, nil
}

// Update patches content and/or the resolved flag.
func (r *CommentRepository) Update(ctx context.Context, id string, content *string, resolved *bool) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Update")
	defer span.End()

	if content == nil && resolved == nil {
		return nil
	}

	q := getQuerier(ctx, r.client.sqlDB)

	set := "updated_at = NOW()"
	args := []interface{}{}
	if content != nil {
		args = append(args, *content)
		set += fmt.Sprintf(", content = $%d", len(args))
	}
	if resolved != nil {
		args = append(args, *resolved)
		set += fmt.Sprintf(", resolved = $%d", len(args))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE comments SET %s WHERE id = $%d", set, len(args))
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update comment: %w", err)
	}

	return nil
}

// Delete removes a comment; replies cascade at the schema level.
func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.CommentRepository.Delete")
	defer span.End()

	q := getQuerier(ctx, r.client.sqlDB)

	_, err := q.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}
