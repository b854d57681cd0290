package entity

import "time"

// Comment is a threaded annotation, optionally anchored to one form field.
type Comment struct {
	ID              string    `json:"id"`
	ProjectID       string    `json:"project_id"`
	FieldPath       string    `json:"field_path,omitempty"`
	Content         string    `json:"content"`
	AuthorID        string    `json:"author_id"`
	ParentCommentID string    `json:"parent_comment_id,omitempty"`
	Resolved        bool      `json:"resolved"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Profile is populated on reads that join profiles.
	Profile *Profile `json:"profile,omitempty"`
}
