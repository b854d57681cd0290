package dto

import (
	"prd-builder-api/internal/domain/entity"
)

// CreateProjectRequest creates a new project.
type CreateProjectRequest struct {
	Title string `json:"title"`
}

// UpdateProjectRequest is an explicit save. Revision is the base the
// client edited from; a stale base gets a 409.
type UpdateProjectRequest struct {
	Title    *string         `json:"title"`
	Status   *string         `json:"status"`
	FormData entity.FormData `json:"form_data"`
	Revision int64           `json:"revision"`
}

// AutosaveRequest queues a debounced form-data write.
type AutosaveRequest struct {
	FormData entity.FormData `json:"form_data" binding:"required"`
}

// MergeRequest applies a generation result to the project form.
type MergeRequest struct {
	Template string         `json:"template" binding:"required"`
	Data     map[string]any `json:"data" binding:"required"`
}

// AddCollaboratorRequest grants access by profile email.
type AddCollaboratorRequest struct {
	Email string `json:"email" binding:"required"`
	Role  string `json:"role"`
}

// AddCommentRequest creates a comment.
type AddCommentRequest struct {
	FieldPath       string `json:"field_path"`
	Content         string `json:"content" binding:"required"`
	ParentCommentID string `json:"parent_comment_id"`
}

// UpdateCommentRequest edits a comment's content, resolved flag, or both.
type UpdateCommentRequest struct {
	Content  *string `json:"content"`
	Resolved *bool   `json:"resolved"`
}

// LogActivityRequest records an audit entry.
type LogActivityRequest struct {
	Action  string         `json:"action" binding:"required"`
	Details map[string]any `json:"details"`
}

// ActivityLogResult reports whether the best-effort write landed.
type ActivityLogResult struct {
	Logged bool   `json:"logged"`
	Reason string `json:"reason,omitempty"`
}

// AIStatusResponse describes the active provider.
type AIStatusResponse struct {
	Configured bool   `json:"configured"`
	Provider   string `json:"provider"`
}

// MergeResponse reports a merge outcome.
type MergeResponse struct {
	Project    *entity.Project `json:"project"`
	MergedKeys int             `json:"merged_keys"`
}
